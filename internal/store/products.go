package store

import (
	"context"
	"database/sql"
	"time"

	"zayna_back_end/internal/models"
)

const productColumns = "id, name, name_ar, description, description_ar, price, image, stock, created_at"

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	p.CreatedAt = time.Now().UTC()

	insert := `INSERT INTO products (name, name_ar, description, description_ar, price, image, stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{p.Name, p.NameAr, p.Description, p.DescriptionAr, float64(p.Price), p.Image, p.Stock, p.CreatedAt}

	if s.driver == "pgx" {
		return s.DB.QueryRowContext(ctx, s.q(insert+" RETURNING id"), args...).Scan(&p.ID)
	}
	res, err := s.DB.ExecContext(ctx, insert, args...)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	row := s.DB.QueryRowContext(ctx, s.q("SELECT "+productColumns+" FROM products WHERE id = ?"), id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := s.DB.ExecContext(ctx,
		s.q(`UPDATE products SET name = ?, name_ar = ?, description = ?, description_ar = ?, price = ?, image = ?, stock = ? WHERE id = ?`),
		p.Name, p.NameAr, p.Description, p.DescriptionAr, float64(p.Price), p.Image, p.Stock, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.q("DELETE FROM products WHERE id = ?"), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var price float64
	err := row.Scan(&p.ID, &p.Name, &p.NameAr, &p.Description, &p.DescriptionAr,
		&price, &p.Image, &p.Stock, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.Price = models.Price(price)
	return p, nil
}
