package main

import (
	"log"
	"os"

	"zayna_back_end/internal/config"
	"zayna_back_end/internal/database"
	"zayna_back_end/internal/handlers"
	"zayna_back_end/internal/routes"
	"zayna_back_end/internal/store"
	"zayna_back_end/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.Close()

	s := store.New(database.DB, database.Driver)
	if err := s.InitSchema(); err != nil {
		log.Fatalf("❌ Échec initialisation du schéma: %v", err)
	}

	hub := ws.NewHub()
	h := handlers.New(s, hub)

	if !config.AdminAuthEnabled() {
		log.Println("⚠️  Aucun mot de passe admin configuré — routes admin ouvertes")
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Zayna lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
