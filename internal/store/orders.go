package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"zayna_back_end/internal/models"
)

const orderColumns = "id, first_name, last_name, phone, address, city, notes, items, total, status, created_at, updated_at"

// CreateOrder insère la commande et décrémente le stock des produits
// concernés dans la même transaction : jamais de stock débité sans
// commande enregistrée, ni l'inverse.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	order.Status = models.StatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO orders (first_name, last_name, phone, address, city, notes, items, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{order.FirstName, order.LastName, order.Phone, order.Address, order.City,
		order.Notes, string(itemsJSON), float64(order.Total), string(order.Status), now, now}

	if s.driver == "pgx" {
		if err := tx.QueryRowContext(ctx, s.q(insert+" RETURNING id"), args...).Scan(&order.ID); err != nil {
			return err
		}
	} else {
		res, err := tx.ExecContext(ctx, insert, args...)
		if err != nil {
			return err
		}
		order.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}
	}

	// Décrément du stock pour les lignes qui référencent un produit connu.
	// Un item sans produit correspondant est ignoré (texte libre du panier).
	for _, item := range order.Items {
		if item.ID <= 0 || item.Quantity <= 0 {
			continue
		}
		_, err := tx.ExecContext(ctx,
			s.q("UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?"),
			item.Quantity, item.ID, item.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListOrders retourne toutes les commandes, les plus récentes d'abord.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	row := s.DB.QueryRowContext(ctx, s.q("SELECT "+orderColumns+" FROM orders WHERE id = ?"), id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return models.Order{}, ErrNotFound
	}
	return o, err
}

// UpdateOrderStatus change le statut et retourne la commande à jour.
// L'UPDATE est conditionné au statut lu par le handler : si une autre
// requête est passée entre-temps, rien n'est écrit et ErrStatusConflict
// est renvoyé plutôt que d'écraser la transition concurrente.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, from, to models.OrderStatus) (models.Order, error) {
	res, err := s.DB.ExecContext(ctx,
		s.q("UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?"),
		string(to), time.Now().UTC(), id, string(from))
	if err != nil {
		return models.Order{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Order{}, err
	}
	if affected == 0 {
		if _, err := s.GetOrder(ctx, id); errors.Is(err, ErrNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, ErrStatusConflict
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.q("DELETE FROM orders WHERE id = ?"), id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	var itemsJSON string
	var total float64
	var status string
	err := row.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Phone, &o.Address, &o.City,
		&o.Notes, &itemsJSON, &total, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}
	o.Total = models.Price(total)
	o.Status = models.OrderStatus(status)
	o.Items = []models.OrderItem{}
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		// Une ligne corrompue ne doit pas casser tout le listing admin.
		log.Printf("⚠️  Items illisibles pour la commande %d: %v", o.ID, err)
		o.Items = []models.OrderItem{}
	}
	return o, nil
}
