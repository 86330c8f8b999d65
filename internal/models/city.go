package models

// City alimente la liste déroulante des villes de livraison au checkout.
// La ville d'une commande reste du texte libre : une commande n'est jamais
// refusée parce que sa ville n'est pas dans cette table.
type City struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"name_ar,omitempty"`
}
