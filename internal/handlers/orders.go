package handlers

import (
	"errors"
	"log"
	"net/http"

	"zayna_back_end/internal/models"
	"zayna_back_end/internal/store"
	"zayna_back_end/internal/utils"
	"zayna_back_end/internal/ws"

	"github.com/gin-gonic/gin"
)

type orderInput struct {
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	City      string             `json:"city"`
	Notes     string             `json:"notes"`
	Items     []models.OrderItem `json:"items"`
	Total     *models.Price      `json:"total"`
}

// CreateOrder reçoit la commande du checkout (paiement à la livraison).
func (h *Handler) CreateOrder(c *gin.Context) {
	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if errors.Is(err, models.ErrInvalidPrice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	missing := []string{}
	if input.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if input.LastName == "" {
		missing = append(missing, "last_name")
	}
	if input.Phone == "" {
		missing = append(missing, "phone")
	}
	if input.Address == "" {
		missing = append(missing, "address")
	}
	if input.City == "" {
		missing = append(missing, "city")
	}
	if len(input.Items) == 0 {
		missing = append(missing, "items")
	}
	if input.Total == nil {
		missing = append(missing, "total")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants", "fields": missing})
		return
	}

	if !utils.IsValidMoroccanPhone(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de téléphone invalide"})
		return
	}

	order := models.Order{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		Notes:     input.Notes,
		Items:     input.Items,
		Total:     *input.Total,
	}

	if err := h.Store.CreateOrder(c.Request.Context(), &order); err != nil {
		log.Println("❌ Erreur création commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'enregistrement de la commande"})
		return
	}

	log.Printf("📦 Nouvelle commande #%d (%s %s, %s)", order.ID, order.FirstName, order.LastName, order.City)

	// L'événement et l'email ne partent qu'après le commit.
	h.Hub.Broadcast(ws.EventNewOrder, order)
	go func(o models.Order) {
		if err := utils.SendNewOrderEmail(o); err != nil {
			log.Println("⚠️  Erreur envoi email de notification:", err)
		}
	}(order)

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Store.ListOrders(c.Request.Context())
	if err != nil {
		log.Println("❌ Erreur listing commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.Store.GetOrder(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur récupération commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus applique un changement de statut en respectant la
// table de transitions (pending → processing → shipped → delivered,
// annulation possible avant expédition).
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}

	next, valid := models.ParseStatus(input.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	}

	current, err := h.Store.GetOrder(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur récupération commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	// PUT idempotent : re-soumettre le statut courant ne change rien.
	if current.Status == next {
		c.JSON(http.StatusOK, current)
		return
	}
	if !current.Status.CanTransitionTo(next) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Transition non autorisée: " + string(current.Status) + " → " + string(next),
		})
		return
	}

	order, err := h.Store.UpdateOrderStatus(c.Request.Context(), id, current.Status, next)
	if errors.Is(err, store.ErrStatusConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "La commande a été modifiée entre-temps, rechargez-la"})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur mise à jour statut:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du statut"})
		return
	}

	log.Printf("🔄 Commande #%d: %s → %s", id, current.Status, next)
	h.Hub.Broadcast(ws.EventOrderUpdated, order)

	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.Store.DeleteOrder(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur suppression commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression commande"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}
