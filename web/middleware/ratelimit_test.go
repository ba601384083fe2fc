package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitNoopWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RateLimitMiddleware(DefaultRateLimitConfig()))
	engine.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitPathScope(t *testing.T) {
	config := DefaultRateLimitConfig()
	assert.True(t, config.applies("/login"))
	assert.True(t, config.applies("/register"))
	assert.False(t, config.applies("/picturestream"))
	assert.False(t, config.applies("/upload"))

	all := RateLimitConfig{}
	assert.True(t, all.applies("/anything"))
}
