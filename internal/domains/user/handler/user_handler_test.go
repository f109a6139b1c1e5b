package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-backend/internal/domains/user/repository"
	"academy-backend/internal/domains/user/service"
	"academy-backend/internal/shared/middleware"
	"academy-backend/pkg/jwt"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	manager := jwt.NewManager("test-secret", time.Hour)
	h := NewUserHandler(service.NewUserService(repository.NewMemoryRepository(), manager, time.Hour))

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", middleware.AuthMiddleware(manager), h.Me)
	return r
}

func postJSON(r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r := setupRouter()

	w := postJSON(r, "/auth/register", map[string]string{
		"name": "Ana", "email": "ana@academy.local", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = postJSON(r, "/auth/register", map[string]string{
		"name": "Ana", "email": "ana@academy.local", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/auth/login", map[string]string{"email": "ana@academy.local", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", map[string]string{"email": "ana@academy.local", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"email":"ana@academy.local"`)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter()

	w := postJSON(r, "/auth/register", map[string]string{"name": "", "email": "bad", "password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
	assert.NotContains(t, w.Body.String(), `"password":"x"`)
}
