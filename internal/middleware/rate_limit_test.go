// internal/middleware/rate_limit_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vervecommerce/verve-backend/internal/utils"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func pingFrom(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	r := limitedRouter(NewRateLimiter(rate.Every(time.Hour), 2))

	assert.Equal(t, http.StatusOK, pingFrom(r, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusOK, pingFrom(r, "1.2.3.4:1000").Code)

	w := pingFrom(r, "1.2.3.4:1000")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
}

func TestRateLimiterTracksVisitorsSeparately(t *testing.T) {
	r := limitedRouter(NewRateLimiter(rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, pingFrom(r, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusOK, pingFrom(r, "5.6.7.8:1000").Code)
}
