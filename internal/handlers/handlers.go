package handlers

import (
	"net/http"
	"strconv"

	"zayna_back_end/internal/store"
	"zayna_back_end/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler regroupe les dépendances injectées dans les routes : la couche
// de persistance et le hub de notifications temps réel.
type Handler struct {
	Store *store.Store
	Hub   *ws.Hub
}

func New(s *store.Store, hub *ws.Hub) *Handler {
	return &Handler{Store: s, Hub: hub}
}

// parseID lit le paramètre :id. Répond 400 et retourne false si invalide.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return 0, false
	}
	return id, true
}
