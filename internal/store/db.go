package store

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound est renvoyé quand l'id demandé n'existe pas.
var ErrNotFound = errors.New("enregistrement introuvable")

// ErrStatusConflict est renvoyé quand le statut d'une commande a changé
// entre sa lecture et la mise à jour conditionnelle.
var ErrStatusConflict = errors.New("statut modifié entre-temps")

// Store est l'unique couche de persistance : un seul schéma, un seul jeu de
// requêtes, le backend (SQLite ou PostgreSQL) choisi au déploiement.
type Store struct {
	DB     *sql.DB
	driver string
}

func New(db *sql.DB, driver string) *Store {
	return &Store{DB: db, driver: driver}
}

// q réécrit les placeholders `?` en `$1..$n` pour PostgreSQL.
func (s *Store) q(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
