// Package gateway exposes the assistant over a websocket chat protocol.
//
// Clients send {"type": "chat", "message": "..."} frames and receive
// {"type": "chat_response", "message": "...", "timestamp": "..."} replies.
// Malformed frames get {"type": "error", "message": "..."} without closing
// the connection. Messages on one connection are served one at a time, in
// arrival order.
package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Frame types exchanged with clients.
const (
	TypeChat         = "chat"
	TypeChatResponse = "chat_response"
	TypeError        = "error"
)

// Envelope is the wire format for every frame in either direction.
type Envelope struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Handler serves one chat message and returns the assistant's reply.
type Handler func(ctx context.Context, message string) (string, error)

// Server terminates websocket connections and routes chat frames to the
// handler.
type Server struct {
	handler  Handler
	upgrader websocket.Upgrader
}

// NewServer creates a gateway around the handler.
func NewServer(handler Handler) *Server {
	return &Server{
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The gateway fronts a local assistant; browser clients on any
			// origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the connection's read loop until
// the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[GATEWAY] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	log.Printf("[GATEWAY] Client %s connected", connID)
	defer log.Printf("[GATEWAY] Client %s disconnected", connID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[GATEWAY] Client %s read error: %v", connID, err)
			}
			return
		}

		reply := s.serve(r.Context(), connID, raw)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[GATEWAY] Client %s write error: %v", connID, err)
			return
		}
	}
}

// serve handles one inbound frame and builds the reply envelope.
func (s *Server) serve(ctx context.Context, connID string, raw []byte) Envelope {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{Type: TypeError, Message: "invalid JSON"}
	}
	if env.Type != TypeChat {
		return Envelope{Type: TypeError, Message: "unsupported message type: " + env.Type}
	}

	reply, err := s.handler(ctx, env.Message)
	if err != nil {
		log.Printf("[GATEWAY] Client %s handler error: %v", connID, err)
		return Envelope{Type: TypeError, Message: "failed to process message"}
	}

	return Envelope{
		Type:      TypeChatResponse,
		Message:   reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ListenAndServe binds the gateway at addr under the given path and blocks.
func (s *Server) ListenAndServe(addr, path string) error {
	if path == "" {
		path = "/ws"
	}
	mux := http.NewServeMux()
	mux.Handle(path, s)
	log.Printf("[GATEWAY] Listening on %s%s", addr, path)
	return http.ListenAndServe(addr, mux)
}
