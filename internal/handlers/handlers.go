package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"kartibul/internal/catalog"
	"kartibul/internal/config"
	"kartibul/internal/coordinator"
	"kartibul/internal/store"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store       *store.MemoryStore
	coordinator *coordinator.Coordinator
	catalog     *catalog.Service
	config      *config.ServerConfig
}

// New creates a new handler
func New(s *store.MemoryStore, co *coordinator.Coordinator, cards *catalog.Service, cfg *config.ServerConfig) *Handler {
	return &Handler{
		store:       s,
		coordinator: co,
		catalog:     cards,
		config:      cfg,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game client is served from its own origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and hands it to the coordinator for the
// lifetime of the socket.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS: upgrade failed: %v", err)
		return
	}

	h.coordinator.HandleConn(conn)
}

// ListCards serves the card catalog as a JSON array of identifiers. Clients
// fetch it once and pass the pool back on every deal request.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.catalog.List()
	if err != nil {
		log.Printf("CARDS: listing failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to read cards directory",
		})
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthReady reports readiness to accept game traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.coordinator == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Store not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("HTTP: failed to encode response: %v", err)
	}
}
