package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/identity"
)

const identityKey = "auth_identity"

// AuthMiddleware extrae el bearer token y lo resuelve contra el proveedor
// de identidad en cada request. No hay caché local de sesión.
func AuthMiddleware(logger *zap.Logger, provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}
		token := strings.TrimSpace(header[len("Bearer "):])

		// Tokens malformados se rechazan sin ir al proveedor.
		if err := identity.CheckTokenShape(token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		user, err := provider.GetUser(c.Request.Context(), token)
		if err != nil {
			if logger != nil && !errors.Is(err, identity.ErrTokenInvalid) {
				logger.Warn("token resolve failed", zap.Error(err))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, domain.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role(),
		})
		c.Next()
	}
}

// RequireAdmin corta requests cuya identidad no tiene rol admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok || !ident.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	ident, ok := val.(domain.Identity)
	return ident, ok
}
