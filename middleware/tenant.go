package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hotel-core/utils"
)

const (
	// HeaderTenantID carries the opaque tenant scoping key.
	HeaderTenantID = "x-tenant-id"

	// ContextTenantKey is where handlers read the resolved tenant from.
	ContextTenantKey = "tenant_id"
)

// TenantRequired resolves the tenant scoping key for every request: the
// x-tenant-id header wins, otherwise the tenant_id claim of the bearer
// token. Requests without either are rejected; the core never guesses a
// tenant.
func TenantRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(HeaderTenantID))
		if tenantID == "" {
			tenantID = tenantFromBearer(c.GetHeader("Authorization"), jwtSecret)
		}
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "tenant context is required",
			})
			return
		}
		c.Set(ContextTenantKey, tenantID)
		c.Next()
	}
}

func tenantFromBearer(authHeader, secret string) string {
	const bearerPrefix = "Bearer "
	if secret == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if tokenString == "" {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	tenantID, _ := claims["tenant_id"].(string)
	return strings.TrimSpace(tenantID)
}

// TenantFrom returns the tenant resolved by TenantRequired.
func TenantFrom(c *gin.Context) string {
	return c.GetString(ContextTenantKey)
}

// JWTSecretFromEnv reads the shared secret used to validate collaborator
// tokens. Empty disables the bearer fallback; the header still works.
func JWTSecretFromEnv() string {
	return utils.EnvOrDefault("JWT_SECRET", "")
}
