package models

import (
	"strings"
	"time"
)

// OrderStatus est l'ensemble fermé des statuts de commande.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Le dashboard historique envoie parfois les libellés français.
var statusSynonyms = map[string]OrderStatus{
	"pending":       StatusPending,
	"en attente":    StatusPending,
	"processing":    StatusProcessing,
	"en cours":      StatusProcessing,
	"en traitement": StatusProcessing,
	"shipped":       StatusShipped,
	"expédiée":      StatusShipped,
	"expediee":      StatusShipped,
	"delivered":     StatusDelivered,
	"completed":     StatusDelivered,
	"livrée":        StatusDelivered,
	"livree":        StatusDelivered,
	"cancelled":     StatusCancelled,
	"annulée":       StatusCancelled,
	"annulee":       StatusCancelled,
}

// ParseStatus canonicalise un statut reçu du client (libellés FR acceptés).
func ParseStatus(raw string) (OrderStatus, bool) {
	s, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// Transitions autorisées. delivered et cancelled sont terminaux.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// CanTransitionTo indique si le passage de s vers next est permis.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

type Order struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Notes     string      `json:"notes,omitempty"`
	Items     []OrderItem `json:"items"`
	Total     Price       `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
