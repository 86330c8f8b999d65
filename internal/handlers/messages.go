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

// Le storefront historique envoie tantôt fullName, tantôt full_name.
type contactInput struct {
	FullName    string `json:"fullName"`
	FullNameAlt string `json:"full_name"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// CreateContact reçoit une soumission du formulaire de contact.
func (h *Handler) CreateContact(c *gin.Context) {
	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	fullName := input.FullName
	if fullName == "" {
		fullName = input.FullNameAlt
	}

	missing := []string{}
	if fullName == "" {
		missing = append(missing, "fullName")
	}
	if input.Phone == "" {
		missing = append(missing, "phone")
	}
	if input.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants", "fields": missing})
		return
	}

	if !utils.IsValidMoroccanPhone(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de téléphone invalide"})
		return
	}

	msg := models.Message{
		FullName: fullName,
		Phone:    input.Phone,
		Subject:  input.Subject,
		Message:  input.Message,
	}

	if err := h.Store.CreateMessage(c.Request.Context(), &msg); err != nil {
		log.Println("❌ Erreur création message:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi du message"})
		return
	}

	log.Printf("✉️  Nouveau message de %s", msg.FullName)
	h.Hub.Broadcast(ws.EventNewMessage, msg)

	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) GetMessages(c *gin.Context) {
	messages, err := h.Store.ListMessages(c.Request.Context())
	if err != nil {
		log.Println("❌ Erreur listing messages:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) GetMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.Store.GetMessage(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur récupération message:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UpdateMessageStatus marque un message comme lu ou non lu.
func (h *Handler) UpdateMessageStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}
	if input.Status != models.MessageRead && input.Status != models.MessageUnread {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	}

	msg, err := h.Store.UpdateMessageStatus(c.Request.Context(), id, input.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur mise à jour message:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.Store.DeleteMessage(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur suppression message:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message supprimé"})
}
