package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func render(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestEnvelope(t *testing.T) {
	w := render(func(c *gin.Context) { Success(c, http.StatusCreated, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, w.Body.String())

	w = render(func(c *gin.Context) { Error(c, http.StatusNotFound, "NOT_FOUND", "gone") })
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"gone"}}`, w.Body.String())

	w = render(func(c *gin.Context) { BindError(c, http.StatusBadRequest, errors.New("EOF")) })
	assert.JSONEq(t, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Invalid request body","details":"EOF"}}`, w.Body.String())
}

func TestAbort(t *testing.T) {
	w := render(func(c *gin.Context) {
		Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "no")
		assert.True(t, c.IsAborted())
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
