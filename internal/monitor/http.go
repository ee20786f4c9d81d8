// Package monitor is an optional telemetry server for cmd/lora-rx: it
// streams per-packet Metrics (CFO, timing offset, Hamming error counts,
// CRC outcome) to connected WebSocket clients and exposes the latest
// snapshot over plain HTTP. It is a consumer of internal/lora, not part
// of the PHY itself, and is only wired in when a caller opts in.
//
// Structured as an http.go/websocket.go split, adapted from a
// file-transfer control plane to a read-only metrics feed.
package monitor

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Server is the HTTP+WebSocket server backing a Hub.
type Server struct {
	mux  *http.ServeMux
	hub  *Hub
	addr string
}

// NewServer creates a server that will listen on addr and serve hub's
// telemetry under /ws (WebSocket stream) and /status (latest snapshot).
func NewServer(addr string, hub *Hub) *Server {
	s := &Server{mux: http.NewServeMux(), hub: hub, addr: addr}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/status", s.handleStatus)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: upgrade error: %v", err)
		return
	}
	s.hub.addClient(conn)

	go func() {
		defer s.hub.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.hub.LastMetrics()
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		json.NewEncoder(w).Encode(map[string]string{"status": "idle"})
		return
	}
	json.NewEncoder(w).Encode(snapshot)
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	log.Printf("monitor: listening on %s", s.addr)
	fmt.Printf("lora-rx monitor running at http://%s (ws: /ws, status: /status)\n", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
