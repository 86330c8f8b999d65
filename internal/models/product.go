package models

import "time"

// Product est une fiche produit du catalogue (libellés FR + AR).
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	NameAr        string    `json:"name_ar,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionAr string    `json:"description_ar,omitempty"`
	Price         Price     `json:"price"`
	Image         string    `json:"image,omitempty"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
}
