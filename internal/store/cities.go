package store

import (
	"context"

	"zayna_back_end/internal/models"
)

// ListCities retourne les villes de livraison, triées par nom.
func (s *Store) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, name, name_ar FROM cities ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAr); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
