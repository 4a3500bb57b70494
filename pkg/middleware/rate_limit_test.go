package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_RejectsAfterBurst(t *testing.T) {
	g := gin.New()
	// rps effectively zero so only the burst tokens are available
	g.GET("/", RateLimitMiddleware(0.0001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		rw := httptest.NewRecorder()
		g.ServeHTTP(rw, req)
		codes = append(codes, rw.Code)
	}
	require.Equal(t, http.StatusOK, codes[0])
	require.Equal(t, http.StatusOK, codes[1])
	require.Equal(t, http.StatusTooManyRequests, codes[2])
	require.Equal(t, http.StatusTooManyRequests, codes[3])
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	g := gin.New()
	g.GET("/", RateLimitMiddleware(0.0001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.9.9.1:1000"
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, first)
	require.Equal(t, http.StatusOK, rw.Code)

	// a different client IP has its own bucket
	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.9.9.2:1000"
	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, second)
	require.Equal(t, http.StatusOK, rw.Code)
}
