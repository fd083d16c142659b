package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request, tagged with a request ID.
// Anything that can carry a token (Authorization, Cookie) is redacted
// before it reaches any sink.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		if ce := log.Check(zap.DebugLevel, "incoming request"); ce != nil {
			hdr, _ := json.Marshal(scrub(c.Request.Header))
			ce.Write(
				zap.String("request_id", reqID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("origin", c.GetHeader("Origin")),
				zap.ByteString("hdr", hdr),
			)
		}

		ts := time.Now()
		c.Next()

		for _, e := range c.Errors {
			log.Error("handler error", zap.String("request_id", reqID), zap.Error(e))
		}

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(ts)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("completed", fields...)
		default:
			log.Info("completed", fields...)
		}
	}
}

func scrub(h http.Header) http.Header {
	clone := h.Clone()
	for k := range clone {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "authorization") || strings.Contains(lower, "cookie") {
			clone[k] = []string{"[redacted]"}
		}
	}
	return clone
}
