package handlers

import (
	"log"
	"net/http"

	"zayna_back_end/internal/config"
	"zayna_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminLogin échange le mot de passe admin contre un token porteur
// valable 24h, utilisé par le dashboard pour le REST et le WebSocket.
func (h *Handler) AdminLogin(c *gin.Context) {
	if !config.AdminAuthEnabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authentification admin non configurée"})
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe requis"})
		return
	}

	if !utils.CheckAdminPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateAdminJWT()
	if err != nil {
		log.Println("❌ Erreur génération token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
