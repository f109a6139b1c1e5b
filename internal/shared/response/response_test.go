package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorEnvelope(t *testing.T) {
	w, body := record(func(c *gin.Context) { NotFound(c, "Course not found") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Course not found", body.Error.Message)
	assert.Nil(t, body.Error.Details)
}

func TestErrorEnvelopeWithFieldDetails(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "BAD_REQUEST", map[string]string{"page": "must be a number"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Message)
	assert.Equal(t, map[string]interface{}{"page": "must be a number"}, body.Error.Details)
}

func TestValidationErrorEchoesInput(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		ValidationError(c, map[string]string{"name": "cannot be blank"}, map[string]string{"price": "9.99"})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]interface{}{"price": "9.99"}, body.Error.Input)
}
