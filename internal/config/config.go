package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Get retourne la variable d'environnement key, ou fallback si absente.
func Get(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// AdminAuthEnabled indique si l'accès admin est protégé. Sans mot de passe
// configuré, les routes admin restent ouvertes (déploiement dev/local).
func AdminAuthEnabled() bool {
	return os.Getenv("ADMIN_PASSWORD") != "" || os.Getenv("ADMIN_PASSWORD_HASH") != ""
}
