package handlers

import (
	"log"
	"net/http"

	"zayna_back_end/internal/cache"
	"zayna_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetCities alimente la liste déroulante des villes au checkout.
func (h *Handler) GetCities(c *gin.Context) {
	ctx := c.Request.Context()

	var cities []models.City
	if cache.GetJSON(ctx, cache.CitiesKey, &cities) {
		c.JSON(http.StatusOK, cities)
		return
	}

	cities, err := h.Store.ListCities(ctx)
	if err != nil {
		log.Println("❌ Erreur listing villes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération villes"})
		return
	}
	cache.SetJSON(ctx, cache.CitiesKey, cities)

	c.JSON(http.StatusOK, cities)
}
