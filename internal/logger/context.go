package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
	// IdentityIDKey là key cho identity của người gọi trong context
	IdentityIDKey ContextKey = "identityID"
)

// WithContext trả về logger entry kèm request_id, identity_id nếu context có
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if ctx == nil {
		return entry
	}
	if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	if uid, ok := ctx.Value(IdentityIDKey).(string); ok && uid != "" {
		entry = entry.WithField("identity_id", uid)
	}
	return entry
}

// RequestID lấy request ID do middleware requestid sinh ra, fallback về header
func RequestID(c fiber.Ctx) string {
	if rid := requestid.FromContext(c); rid != "" {
		return rid
	}
	return c.Get(fiber.HeaderXRequestID)
}

// WithRequest trả về logger entry với thông tin request từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if rid := RequestID(c); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}

// WithModule trả về logger entry với module name (auth, recruit, aiclient, ...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// Audit ghi một hành động nghiệp vụ vào audit log
func Audit(ctx context.Context, action string, fields logrus.Fields) {
	entry := GetAuditLogger().WithContext(ctx).WithField("action", action)
	if ctx != nil {
		if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
			entry = entry.WithField("request_id", rid)
		}
		if uid, ok := ctx.Value(IdentityIDKey).(string); ok && uid != "" {
			entry = entry.WithField("identity_id", uid)
		}
	}
	entry.WithFields(fields).Info("audit")
}
