package middleware

import (
	"net/http"
	"strings"

	"github.com/sppg/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TenantIDKey is the gin context key holding the resolved tenant id.
	TenantIDKey = "tenant_id"
	// TenantHeaderKey carries the tenant id on pre-auth requests such
	// as login, where no JWT claim exists yet.
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig configures TenantMiddlewareWithConfig.
type TenantMiddlewareConfig struct {
	// SkipPaths bypass tenant resolution (health probes).
	SkipPaths []string
	// Required rejects requests without a tenant. The pre-auth
	// middleware chain runs with Required false because login resolves
	// the tenant itself.
	Required bool
	Logger   *zap.Logger
}

// DefaultTenantConfig returns the default tenant middleware settings.
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/api/v1/ping"},
		Required:  true,
	}
}

// OptionalTenantMiddleware resolves the tenant when identifiable but
// lets anonymous requests through.
func OptionalTenantMiddleware() gin.HandlerFunc {
	cfg := DefaultTenantConfig()
	cfg.Required = false
	return TenantMiddlewareWithConfig(cfg)
}

// TenantMiddlewareWithConfig resolves the caller's tenant, preferring
// the JWT claim over the X-Tenant-ID header so an authenticated client
// cannot point the request at another tenant.
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tenantID := ""
		source := ""
		if jwtTenantID := GetJWTTenantID(c); jwtTenantID != "" {
			tenantID = jwtTenantID
			source = "jwt"
		} else if headerTenantID := c.GetHeader(TenantHeaderKey); headerTenantID != "" {
			tenantID = headerTenantID
			source = "header"
		}

		if tenantID != "" {
			if _, err := uuid.Parse(tenantID); err != nil {
				respondUnauthorized(c, "Invalid tenant ID format")
				return
			}
		}
		if tenantID == "" && cfg.Required {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		if tenantID != "" {
			c.Set(TenantIDKey, tenantID)

			// Service-layer log lines and the gorm tracer read the
			// tenant from the request context.
			ctx := c.Request.Context()
			ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Tenant identified",
					zap.String("tenant_id", tenantID),
					zap.String("source", source),
				)
			}
		}

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetTenantID returns the resolved tenant id, or "".
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantUUID returns the resolved tenant id parsed as a UUID.
// uuid.Nil without error means no tenant was resolved.
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}
