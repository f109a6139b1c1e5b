package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/shared/authz"
	"academy-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(actor.Role)+":"+actor.UserID)
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateAccessToken("u-1", "ana@academy.local", "admin")
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(manager))

	t.Run("missing header", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwt.NewManager("other", time.Hour).GenerateAccessToken("u-1", "x", "admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := do(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin:u-1", w.Body.String())
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := newRouter(OptionalAuthMiddleware(manager))

	w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, "anonymous", do(r, req).Body.String())

	token, err := manager.GenerateAccessToken("u-2", "leo@academy.local", "root")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, string(authz.RoleUser)+":u-2", do(r, req).Body.String())
}

func TestSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(SessionMiddleware(DefaultSessionConfig(false)))
	r.GET("/sid", func(c *gin.Context) { c.String(http.StatusOK, GetSessionID(c)) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/sid", nil))
	issued := w.Body.String()
	_, err := uuid.Parse(issued)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, SessionMaxAge, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: issued})
	assert.Equal(t, issued, do(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", do(r, req).Body.String())
}

func TestStoreOpen(t *testing.T) {
	closed := newRouter(StoreOpen(false, "The store is closed"))
	w := do(closed, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "The store is closed")

	open := newRouter(StoreOpen(true, "The store is closed"))
	assert.Equal(t, http.StatusOK, do(open, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS([]string{"http://localhost:3000"}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := do(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := do(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.3"}, "10.0.0.2:5000", "198.51.100.3"},
		{"garbage header falls back", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1:80", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.9", "192.0.2.9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tc.want, ClientIP(c))
		})
	}

	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("127.0.0.1"))
	assert.False(t, IsPrivateIP("203.0.113.7"))
	assert.False(t, IsPrivateIP("bogus"))
}
