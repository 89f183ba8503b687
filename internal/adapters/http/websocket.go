package http

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/routegrade/internal/adapters/nats"
	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/metrics"
)

// wsMessage is sent from the client to narrow the relayed events.
type wsMessage struct {
	Action     string `json:"action"`     // "filter" | "clear"
	Difficulty string `json:"difficulty"` // e.g. "Hard"; "" = all
}

// routeFilter holds the difficulty a client asked for.
type routeFilter struct {
	mu         sync.RWMutex
	difficulty string
}

func (f *routeFilter) set(d string) {
	f.mu.Lock()
	f.difficulty = d
	f.mu.Unlock()
}

func (f *routeFilter) match(data []byte) bool {
	f.mu.RLock()
	want := f.difficulty
	f.mu.RUnlock()
	if want == "" {
		return true
	}
	var ev domain.RouteComputed
	if err := json.Unmarshal(data, &ev); err != nil {
		return false
	}
	return strings.EqualFold(string(ev.Stats.Difficulty), want)
}

// WebSocketHandler relays route-computed events to connected clients.
// Clients may send {"action":"filter","difficulty":"Hard"} to only receive
// routes of one difficulty, and {"action":"clear"} to receive all again.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		log := slog.With("remote", remoteAddr)
		log.Info("ws client connected")
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		filter := &routeFilter{}
		sub, err := nc.Subscribe(natsadapter.RouteComputedSubj, func(msg *nats.Msg) {
			if filter.match(msg.Data) {
				_ = writeJSON(json.RawMessage(msg.Data))
			}
		})
		if err != nil {
			log.Error("ws subscribe failed", "error", err)
			return
		}
		defer func() { _ = sub.Unsubscribe() }()

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "filter":
				filter.set(m.Difficulty)
				_ = writeJSON(map[string]string{"status": "filtering", "difficulty": m.Difficulty})
			case "clear":
				filter.set("")
				_ = writeJSON(map[string]string{"status": "cleared"})
			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		log.Info("ws client disconnected")
	}
}
