package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/server/api"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PredictStream serves predictions over a WebSocket. Every message is a
// prediction request body; every reply is an api.Result.
type PredictStream struct {
	predict *api.PredictHandler
	logger  *slog.Logger
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewPredictStream creates a PredictStream that evaluates messages with h.
func NewPredictStream(h *api.PredictHandler, logger *slog.Logger) *PredictStream {
	return &PredictStream{
		predict: h,
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (p *PredictStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.WarnContext(r.Context(), "WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(p.predict.MaxBodyBytes())

	p.mu.Lock()
	p.clients[conn] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.clients, conn)
		p.mu.Unlock()
	}()

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				p.logger.DebugContext(ctx, "WebSocket closed", "error", err)
			}
			return
		}

		res := p.predict.EvaluateMessage(ctx, msg)

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(res); err != nil {
			p.logger.DebugContext(ctx, "WebSocket write failed", "error", err)
			return
		}
	}
}

// CloseAll sends a close frame to every connected client and closes the
// connections. Their handlers return once the pending read fails.
func (p *PredictStream) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range p.clients {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
}

// Clients returns the number of open connections.
func (p *PredictStream) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}
