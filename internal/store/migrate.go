package store

import "log"

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		notes TEXT DEFAULT '',
		items TEXT NOT NULL,
		total REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		subject TEXT DEFAULT '',
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'unread',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		name_ar TEXT DEFAULT '',
		description TEXT DEFAULT '',
		description_ar TEXT DEFAULT '',
		price REAL NOT NULL,
		image TEXT DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		name_ar TEXT DEFAULT ''
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		notes TEXT DEFAULT '',
		items TEXT NOT NULL,
		total DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		subject TEXT DEFAULT '',
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'unread',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		name_ar TEXT DEFAULT '',
		description TEXT DEFAULT '',
		description_ar TEXT DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		image TEXT DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		name_ar TEXT DEFAULT ''
	)`,
}

// Villes proposées par défaut au checkout.
var defaultCities = [][2]string{
	{"Casablanca", "الدار البيضاء"},
	{"Rabat", "الرباط"},
	{"Marrakech", "مراكش"},
	{"Fès", "فاس"},
	{"Tanger", "طنجة"},
	{"Agadir", "أكادير"},
	{"Meknès", "مكناس"},
	{"Oujda", "وجدة"},
	{"Kénitra", "القنيطرة"},
	{"Tétouan", "تطوان"},
	{"Salé", "سلا"},
	{"El Jadida", "الجديدة"},
}

// InitSchema crée les tables si besoin et seed la table des villes.
// Les statements sont exécutés un par un : le driver pgx n'accepte pas
// les Exec multi-statements.
func (s *Store) InitSchema() error {
	schema := sqliteSchema
	if s.driver == "pgx" {
		schema = postgresSchema
	}
	for _, stmt := range schema {
		if _, err := s.DB.Exec(stmt); err != nil {
			log.Println("❌ Erreur création du schéma:", err)
			return err
		}
	}

	var count int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM cities").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for _, c := range defaultCities {
			if _, err := s.DB.Exec(s.q("INSERT INTO cities (name, name_ar) VALUES (?, ?)"), c[0], c[1]); err != nil {
				return err
			}
		}
		log.Printf("🏙️  %d villes insérées par défaut", len(defaultCities))
	}
	return nil
}
