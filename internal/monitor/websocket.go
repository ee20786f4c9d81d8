package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jeongseonghan/lora-phy/internal/lora"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local telemetry viewer, not exposed beyond the operator's machine
	},
}

// Message is the envelope every WebSocket frame carries.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// MetricsPayload mirrors lora.Metrics for JSON, plus a symbol count so the
// viewer can show throughput alongside decode quality.
type MetricsPayload struct {
	CRCOk         bool    `json:"crcOk"`
	CFO           float32 `json:"cfo"`
	TimeOffset    float32 `json:"timeOffset"`
	HammingErrors int     `json:"hammingErrors"`
	HammingBad    int     `json:"hammingBad"`
	SymbolCount   int     `json:"symbolCount"`
}

// Hub fans a stream of decode events out to every connected WebSocket
// client, and keeps the most recent one for late-joining clients (exposed
// over plain HTTP by Server.handleStatus).
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex

	lastMu sync.RWMutex
	last   MetricsPayload
	seen   bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) addClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("monitor: client connected (%d total)", len(h.clients))
}

func (h *Hub) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("monitor: client disconnected (%d remaining)", len(h.clients))
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("monitor: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("monitor: write error: %v", err)
			go h.removeClient(conn)
		}
	}
}

// PublishMetrics broadcasts the metrics from one Decode/Demodulate call and
// remembers it as the latest snapshot.
func (h *Hub) PublishMetrics(m lora.Metrics, symbolCount int) {
	payload := MetricsPayload{
		CRCOk:         m.CRCOk,
		CFO:           m.CFO,
		TimeOffset:    m.TimeOffset,
		HammingErrors: m.HammingErrors,
		HammingBad:    m.HammingBad,
		SymbolCount:   symbolCount,
	}

	h.lastMu.Lock()
	h.last = payload
	h.seen = true
	h.lastMu.Unlock()

	h.broadcast(Message{Type: "metrics", Payload: payload})
}

// PublishLog broadcasts a free-form operator log line.
func (h *Hub) PublishLog(level, message string) {
	h.broadcast(Message{Type: "log", Payload: map[string]string{
		"level":   level,
		"message": message,
	}})
}

// LastMetrics returns the most recently published snapshot and whether one
// has ever been published.
func (h *Hub) LastMetrics() (MetricsPayload, bool) {
	h.lastMu.RLock()
	defer h.lastMu.RUnlock()
	return h.last, h.seen
}
