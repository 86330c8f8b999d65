package store

import (
	"context"
	"database/sql"
	"time"

	"zayna_back_end/internal/models"
)

const messageColumns = "id, full_name, phone, subject, message, status, created_at"

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.Status = models.MessageUnread
	msg.CreatedAt = time.Now().UTC()

	insert := `INSERT INTO messages (full_name, phone, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	args := []any{msg.FullName, msg.Phone, msg.Subject, msg.Message, msg.Status, msg.CreatedAt}

	if s.driver == "pgx" {
		return s.DB.QueryRowContext(ctx, s.q(insert+" RETURNING id"), args...).Scan(&msg.ID)
	}
	res, err := s.DB.ExecContext(ctx, insert, args...)
	if err != nil {
		return err
	}
	msg.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.FullName, &m.Phone, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) GetMessage(ctx context.Context, id int64) (models.Message, error) {
	var m models.Message
	err := s.DB.QueryRowContext(ctx, s.q("SELECT "+messageColumns+" FROM messages WHERE id = ?"), id).
		Scan(&m.ID, &m.FullName, &m.Phone, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Message{}, ErrNotFound
	}
	return m, err
}

// UpdateMessageStatus bascule un message entre lu et non lu.
func (s *Store) UpdateMessageStatus(ctx context.Context, id int64, status string) (models.Message, error) {
	res, err := s.DB.ExecContext(ctx, s.q("UPDATE messages SET status = ? WHERE id = ?"), status, id)
	if err != nil {
		return models.Message{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Message{}, err
	}
	if affected == 0 {
		return models.Message{}, ErrNotFound
	}
	return s.GetMessage(ctx, id)
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.q("DELETE FROM messages WHERE id = ?"), id)
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
