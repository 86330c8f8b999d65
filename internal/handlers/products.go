package handlers

import (
	"errors"
	"log"
	"net/http"

	"zayna_back_end/internal/cache"
	"zayna_back_end/internal/models"
	"zayna_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// GetProducts sert le catalogue public, avec cache Redis quand il est là.
func (h *Handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var products []models.Product
	if cache.GetJSON(ctx, cache.ProductsKey, &products) {
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := h.Store.ListProducts(ctx)
	if err != nil {
		log.Println("❌ Erreur listing produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}
	cache.SetJSON(ctx, cache.ProductsKey, products)

	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur récupération produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produit"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productInput struct {
	Name          string        `json:"name"`
	NameAr        string        `json:"name_ar"`
	Description   string        `json:"description"`
	DescriptionAr string        `json:"description_ar"`
	Price         *models.Price `json:"price"`
	Image         string        `json:"image"`
	Stock         int           `json:"stock"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Name == "" || input.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants", "fields": []string{"name", "price"}})
		return
	}

	product := models.Product{
		Name:          input.Name,
		NameAr:        input.NameAr,
		Description:   input.Description,
		DescriptionAr: input.DescriptionAr,
		Price:         *input.Price,
		Image:         input.Image,
		Stock:         input.Stock,
	}

	if err := h.Store.CreateProduct(c.Request.Context(), &product); err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	cache.Invalidate(c.Request.Context(), cache.ProductsKey)
	log.Printf("🧴 Produit créé: %s (#%d)", product.Name, product.ID)

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Name == "" || input.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants", "fields": []string{"name", "price"}})
		return
	}

	product := models.Product{
		ID:            id,
		Name:          input.Name,
		NameAr:        input.NameAr,
		Description:   input.Description,
		DescriptionAr: input.DescriptionAr,
		Price:         *input.Price,
		Image:         input.Image,
		Stock:         input.Stock,
	}

	err := h.Store.UpdateProduct(c.Request.Context(), &product)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.Invalidate(c.Request.Context(), cache.ProductsKey)

	updated, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produit"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.Store.DeleteProduct(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur suppression produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.Invalidate(c.Request.Context(), cache.ProductsKey)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
