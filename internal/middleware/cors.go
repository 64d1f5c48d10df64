package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
	"Access-Control-Expose-Headers": "X-Request-ID",
}

// CORS stamps the allow headers on every response and short-circuits
// preflights. The back office frontend is served from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range corsHeaders {
			c.Header(k, v)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
