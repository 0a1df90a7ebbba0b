package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"decentratrust/internal/service"
)

const authClaimsKey = "auth_claims"

// AuthMiddleware valida tokens de servicio y guarda claims en el contexto.
func AuthMiddleware(tokenSvc *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokenSvc.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetServiceClaims obtiene las claims del token desde el contexto.
func GetServiceClaims(c *gin.Context) (service.ServiceClaims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.ServiceClaims{}, false
	}
	claims, ok := val.(service.ServiceClaims)
	return claims, ok
}
