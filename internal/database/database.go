package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// --- Variables Globales ---
var (
	DB     *sql.DB
	Driver string // "sqlite" ou "pgx"
	Redis  *redis.Client
)

// ConnectDatabases ouvre la base SQL (SQLite par défaut, PostgreSQL si
// DATABASE_URL ou DB_HOST est défini) puis Redis si configuré.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, driver, err := OpenSQL()
	if err != nil {
		log.Fatalf("❌ Échec connexion base de données: %v", err)
	}
	DB = db
	Driver = driver

	connectRedis(ctx)
}

// OpenSQL ouvre le handle SQL selon l'environnement. Exporté pour que les
// outils (et les tests d'intégration) puissent ouvrir la même base.
func OpenSQL() (*sql.DB, string, error) {
	if dsn := postgresDSN(); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", err
		}
		if err := db.Ping(); err != nil {
			return nil, "", fmt.Errorf("ping PostgreSQL: %w", err)
		}
		log.Println("✅ Connecté à PostgreSQL")
		return db, "pgx", nil
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "./zayna.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, "", err
	}
	// Le driver pure-Go sérialise mal les écritures concurrentes sur
	// plusieurs connexions ; une seule connexion suffit ici.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, "", fmt.Errorf("ping SQLite: %w", err)
	}
	log.Println("✅ Connecté à SQLite :", path)
	return db, "sqlite", nil
}

func postgresDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host, port, os.Getenv("DB_NAME"))
}

// Redis est optionnel : sans REDIS_HOST, cache et rate limiting sont
// simplement désactivés.
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		log.Println("⚠️  REDIS_HOST non défini — cache et rate limiting désactivés")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️  Redis injoignable, on continue sans cache:", err)
		return
	}
	Redis = client
	log.Println("✅ Connecté à Redis")
}

// Close ferme proprement les connexions ouvertes.
func Close() {
	if DB != nil {
		DB.Close()
	}
	if Redis != nil {
		Redis.Close()
	}
}
