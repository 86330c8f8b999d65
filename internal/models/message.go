package models

import "time"

const (
	MessageUnread = "unread"
	MessageRead   = "read"
)

// Message est une soumission du formulaire de contact.
type Message struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
