package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"zayna_back_end/internal/config"
	"zayna_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event est le message poussé aux dashboards admin connectés.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventWelcome      = "welcome"
	EventNewOrder     = "new_order"
	EventOrderUpdated = "order_updated"
	EventNewMessage   = "new_message"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Le dashboard peut être servi depuis un autre domaine que l'API.
		return true
	},
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Event
	done chan struct{}
}

// Hub tient la "room admin" : l'ensemble des sockets ayant réussi le
// handshake de join. La livraison est best-effort, au plus une fois ;
// le dashboard se resynchronise toujours par un re-fetch complet.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Broadcast pousse un événement à tous les admins connectés. Un client
// qui ne consomme plus est évincé plutôt que de bloquer les autres.
func (h *Hub) Broadcast(eventType string, payload any) {
	ev := Event{Type: eventType, Payload: payload}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- ev:
		default:
			log.Printf("⚠️  Client WebSocket %s trop lent, éviction", id)
			delete(h.clients, id)
			close(c.done)
			closeConn(c)
		}
	}
}

// ClientCount retourne le nombre d'admins dans la room.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

type joinRequest struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// HandleWS gère une connexion dashboard : handshake de join, welcome,
// puis push d'événements jusqu'à la déconnexion.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Le premier message doit être le join, sous 10 secondes.
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var join joinRequest
	if err := conn.ReadJSON(&join); err != nil || join.Type != "join" {
		conn.WriteJSON(Event{Type: "error", Payload: "join attendu"})
		return
	}
	if !h.authorizeJoin(join.Token) {
		conn.WriteJSON(Event{Type: "error", Payload: "token invalide"})
		return
	}
	conn.SetReadDeadline(time.Time{})

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, 16),
		done: make(chan struct{}),
	}
	h.register(cl)
	defer h.unregister(cl.id)

	log.Printf("🔔 Admin connecté au flux temps réel (%s)", cl.id)
	go h.writePump(cl)

	cl.send <- Event{Type: EventWelcome, Payload: gin.H{"client_id": cl.id}}

	// On ne fait que détecter la fermeture : le canal est unidirectionnel
	// après le join.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Avec l'auth admin activée, le token du join est réellement vérifié
// (même JWT que la surface REST). Sans auth configurée, seule sa
// présence est exigée.
func (h *Hub) authorizeJoin(token string) bool {
	if token == "" {
		return false
	}
	if !config.AdminAuthEnabled() {
		return true
	}
	return utils.VerifyAdminJWT(token) == nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.done)
		closeConn(c)
	}
}

// closeConn ferme réellement la socket d'un client retiré : trame de
// fermeture best-effort, puis Close. Sans ça, un dashboard évincé reste
// « en direct » sans jamais se reconnecter, et la goroutine de lecture
// de HandleWS reste bloquée indéfiniment.
func closeConn(c *client) {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
		time.Now().Add(time.Second))
	c.conn.Close()
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case ev := <-c.send:
			if err := c.conn.WriteJSON(ev); err != nil {
				h.unregister(c.id)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c.id)
				return
			}
		case <-c.done:
			return
		}
	}
}
