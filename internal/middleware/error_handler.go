package middleware

import (
	"net/http"
	"time"

	"github.com/lrplaceres/punto-venta/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const mensajeInterno = "Error interno del servidor"

func logFallo(c *gin.Context, evt string, err error, panicked any) {
	e := log.Error().
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath())
	if err != nil {
		e = e.Err(err)
	}
	if panicked != nil {
		e = e.Interface("panic", panicked)
	}
	e.Msg(evt)
}

// ErrorHandler turns errors left on the gin context into a generic 500.
// Clients only ever see the Spanish detail message, never internals.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		logFallo(c, "unhandled error", c.Errors.Last().Err, nil)
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeInterno))
	}
}

// Recovery converts panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logFallo(c, "panic recovered", nil, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeInterno))
			}
		}()
		c.Next()
	}
}

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
