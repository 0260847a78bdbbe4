package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/pkg/middleware/requestid"
)

// Audit logs every successful state-changing operation after the handler ran.
// The operation name is read from the route parameter.
func Audit(logger *zap.Logger, param string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("audit")
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		op := models.Operation(c.Param(param))
		if !op.Mutates() || c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("operation", string(op)),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
		}
		if id := requestid.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if session, ok := CurrentSession(c); ok {
			fields = append(fields,
				zap.String("username", session.Principal.Username),
				zap.String("role", string(session.Principal.Role)),
			)
		}
		logger.Info("operation applied", fields...)
	}
}
