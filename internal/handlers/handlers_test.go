package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"zayna_back_end/internal/handlers"
	"zayna_back_end/internal/models"
	"zayna_back_end/internal/routes"
	"zayna_back_end/internal/store"
	"zayna_back_end/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := store.New(db, "sqlite")
	require.NoError(t, s.InitSchema())

	hub := ws.NewHub()
	h := handlers.New(s, hub)

	r := gin.New()
	routes.RegisterRoutes(r, h, hub)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validOrderPayload() map[string]any {
	return map[string]any{
		"first_name": "Amina",
		"last_name":  "El Fassi",
		"phone":      "0612345678",
		"address":    "12 Rue X",
		"city":       "Agadir",
		"items": []map[string]any{
			{"id": 1, "name": "Pack", "price": "249", "quantity": 1},
		},
		"total": 249,
	}
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateOrderRoundtrip(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.InDelta(t, 249, float64(created.Total), 0.001)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Amina", fetched.FirstName)
	assert.Equal(t, "El Fassi", fetched.LastName)
	assert.InDelta(t, 249, float64(fetched.Total), 0.001)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Pack", fetched.Items[0].Name)
	assert.InDelta(t, 249, float64(fetched.Items[0].Price), 0.001)
}

func TestCreateOrderMissingFields(t *testing.T) {
	r := newTestServer(t)

	for _, field := range []string{"first_name", "last_name", "phone", "address", "city", "items", "total"} {
		payload := validOrderPayload()
		delete(payload, field)

		w := doJSON(t, r, http.MethodPost, "/api/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "champ %s manquant", field)

		var resp struct {
			Fields []string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, field)
	}

	// Aucun enregistrement ne doit avoir été créé
	w := doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateOrderInvalidPhone(t *testing.T) {
	r := newTestServer(t)
	payload := validOrderPayload()
	payload["phone"] = "0512345678"

	w := doJSON(t, r, http.MethodPost, "/api/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEmptyTotal(t *testing.T) {
	r := newTestServer(t)
	payload := validOrderPayload()
	payload["total"] = ""

	w := doJSON(t, r, http.MethodPost, "/api/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderNegativeTotal(t *testing.T) {
	r := newTestServer(t)

	// Refusé que le montant arrive en nombre ou en chaîne formatée.
	for _, total := range []any{-5, "-5 DH"} {
		payload := validOrderPayload()
		payload["total"] = total

		w := doJSON(t, r, http.MethodPost, "/api/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "total %v", total)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	// Transition valide, avec libellé français
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "en cours"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusProcessing, updated.Status)

	// Transition interdite
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Statut inconnu
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Id inconnu
	w = doJSON(t, r, http.MethodPut, "/api/orders/9999/status", gin.H{"status": "processing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// PUT idempotent sur le statut courant
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "processing"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", validOrderPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersNewestFirst(t *testing.T) {
	r := newTestServer(t)

	first := validOrderPayload()
	w := doJSON(t, r, http.MethodPost, "/api/orders", first)
	require.Equal(t, http.StatusCreated, w.Code)

	second := validOrderPayload()
	second["first_name"] = "Khadija"
	w = doJSON(t, r, http.MethodPost, "/api/orders", second)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "Khadija", orders[0].FirstName)
	assert.Equal(t, "Amina", orders[1].FirstName)
}

func TestContactPhoneValidation(t *testing.T) {
	r := newTestServer(t)

	base := gin.H{"fullName": "Yassine Berrada", "message": "Bonjour"}

	for _, phone := range []string{"0612345678", "0712345678"} {
		payload := gin.H{"fullName": base["fullName"], "message": base["message"], "phone": phone}
		w := doJSON(t, r, http.MethodPost, "/api/contact", payload)
		assert.Equal(t, http.StatusCreated, w.Code, "devrait accepter %s", phone)
	}

	for _, phone := range []string{"0512345678", "123456", ""} {
		payload := gin.H{"fullName": base["fullName"], "message": base["message"], "phone": phone}
		w := doJSON(t, r, http.MethodPost, "/api/contact", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "devrait rejeter %q", phone)
	}
}

func TestContactAcceptsSnakeCaseName(t *testing.T) {
	r := newTestServer(t)

	payload := gin.H{"full_name": "Salma Idrissi", "phone": "0612345678", "message": "Question"}
	w := doJSON(t, r, http.MethodPost, "/api/contact", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var msg models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "Salma Idrissi", msg.FullName)
	assert.Equal(t, models.MessageUnread, msg.Status)
}

func TestMessageLifecycle(t *testing.T) {
	r := newTestServer(t)

	payload := gin.H{"fullName": "Yassine Berrada", "phone": "0712345678", "subject": "Livraison", "message": "Où en est ma commande ?"}
	w := doJSON(t, r, http.MethodPost, "/api/contact", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var msg models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/messages/%d/status", msg.ID), gin.H{"status": "read"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/messages/%d/status", msg.ID), gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/messages/999/status", gin.H{"status": "read"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/messages/%d", msg.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProductsAndCities(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/products", gin.H{"name": "Huile d'argan", "price": "120", "stock": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)

	// Une commande sur ce produit décrémente le stock
	payload := validOrderPayload()
	payload["items"] = []map[string]any{
		{"id": product.ID, "name": product.Name, "price": "120", "quantity": 2},
	}
	payload["total"] = 240
	w = doJSON(t, r, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 8, product.Stock)

	w = doJSON(t, r, http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cities []models.City
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
	assert.NotEmpty(t, cities)
}

func TestAdminLoginFlow(t *testing.T) {
	r := newTestServer(t)

	// Sans mot de passe configuré, le login est explicitement refusé
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Setenv("ADMIN_PASSWORD", "secret-admin")
	t.Setenv("JWT_SECRET", "secret-de-test")

	w = doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{"password": "mauvais"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{"password": "secret-admin"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// Auth activée : la surface admin exige le token
	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
