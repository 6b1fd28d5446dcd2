package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
	HeaderTenantID  = "X-Tenant-ID"
	HeaderRoles     = "X-User-Roles"

	requestIDKey = "request_id"
	identityKey  = "identity"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs one entry per request, at a level picked by status.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("Server error", fields...)
		case status >= 400:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

// Identity builds the caller from headers set by the gateway after it has
// verified the token. A request without X-User-ID is anonymous.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := domain.Identity{Authorization: c.GetHeader("Authorization")}

		if raw := c.GetHeader(HeaderUserID); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				writeError(c, domain.ErrUnauthenticated)
				return
			}
			id.UserID = userID
		}

		if raw := c.GetHeader(HeaderTenantID); raw != "" {
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				writeError(c, domain.ErrInvalidTenantID)
				return
			}
			id.TenantID = &tenantID
		}

		for _, role := range strings.Split(c.GetHeader(HeaderRoles), ",") {
			if role = strings.ToUpper(strings.TrimSpace(role)); role != "" {
				id.Roles = append(id.Roles, role)
			}
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func identity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}

func pathUUID(c *gin.Context, name string, invalid error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeError(c, invalid)
		return uuid.Nil, false
	}
	return id, true
}
