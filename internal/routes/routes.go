package routes

import (
	"os"
	"strings"
	"time"

	"zayna_back_end/internal/handlers"
	"zayna_back_end/internal/middleware"
	"zayna_back_end/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, hub *ws.Hub) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		// Surface publique (storefront)
		api.POST("/orders", middleware.OrderRateLimit(), h.CreateOrder)
		api.POST("/contact", middleware.ContactRateLimit(), h.CreateContact)
		api.GET("/products", h.GetProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/cities", h.GetCities)

		api.POST("/admin/login", h.AdminLogin)

		// Surface admin (dashboard)
		admin := api.Group("/", middleware.AdminRequired())
		{
			admin.GET("/orders", h.GetOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
			admin.DELETE("/orders/:id", h.DeleteOrder)

			admin.GET("/messages", h.GetMessages)
			admin.GET("/messages/:id", h.GetMessage)
			admin.PUT("/messages/:id/status", h.UpdateMessageStatus)
			admin.DELETE("/messages/:id", h.DeleteMessage)

			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
		}
	}

	// Flux temps réel du dashboard (le join fait office d'auth)
	r.GET("/ws", hub.HandleWS)

	// Dashboard admin servi par le binaire lui-même
	r.StaticFile("/admin", "./web/admin.html")
}

// corsConfig autorise tout par défaut ; CORS_ORIGINS restreint la liste
// en production (origines séparées par des virgules).
func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
