package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonagenda/internal/pkg/response"
)

// RequestLogger logs every request once it is served. Handler errors pushed
// with c.Error and 5xx responses are logged at error level.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestID(c)),
			zap.Duration("latency", time.Since(start)),
		}
		if id := c.GetString(DraftIDKey); id != "" {
			fields = append(fields, zap.String("draft_id", id))
		}

		switch {
		case len(c.Errors) > 0:
			for _, err := range c.Errors {
				log.Error("request_error", append(fields, zap.Error(err.Err))...)
			}
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("http_error", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 envelope and logs the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", requestID(c)),
					zap.Error(fmt.Errorf("%v", recovered)),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
			}
		}()

		c.Next()
	}
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
