package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/auth"
	ws "github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/websocket"
)

// WebSocketHandler upgrades authenticated HTTP connections to WebSocket
// connections for realtime announcement and message push.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. The JWT middleware has
// already authenticated the caller, so claims identify the subscriber.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing auth token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID, claims.Roles)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		// The push channel is one-way; inbound frames are drained and
		// dropped so ping/pong keeps working.
		client.ReadPump(func(*ws.Client, []byte) {})
		h.hub.Unregister <- client
	}()
}
