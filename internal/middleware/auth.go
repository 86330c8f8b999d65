package middleware

import (
	"net/http"
	"strings"

	"zayna_back_end/internal/config"
	"zayna_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminRequired protège les routes admin. L'auth est optionnelle : sans
// mot de passe admin configuré, tout passe (déploiement local/dev).
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AdminAuthEnabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		if err := utils.VerifyAdminJWT(parts[1]); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		c.Next()
	}
}
