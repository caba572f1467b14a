// Package realtime держит websocket-подключения карты. Каждое подключение получает
// собственную сессию просмотра; события по проблемам рассылаются сессиям того же города.
package realtime

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/mobility_map/internal/markers"
	"github.com/shenikar/mobility_map/internal/session"
	"github.com/shenikar/mobility_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	source   session.IssueSource
	logger   *logrus.Logger
	opts     markers.Options
	upgrader websocket.Upgrader
}

// NewHub создает хаб. Пустой allowedOrigins или "*" пропускает любой Origin.
func NewHub(source session.IssueSource, logger *logrus.Logger, opts markers.Options, allowedOrigins []string) *Hub {
	h := &Hub{
		clients: make(map[*Client]struct{}),
		source:  source,
		logger:  logger,
		opts:    opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), allowedOrigins)
		},
	}
	return h
}

// ServeWS переводит запрос в websocket и запускает сессию карты.
// Параметр ?city= сразу подписывает сессию на город.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := newClient(h, conn, uuid.NewString())
	h.register(c)
	c.log.Info("Map client connected")

	go c.writePump()
	go c.readPump()

	if city := strings.TrimSpace(r.URL.Query().Get("city")); city != "" {
		go c.loadCity(city)
	}
}

// Publish реализует webhook.EventPublisher: свежая версия проблемы вливается
// в сессии, которые смотрят тот же город
func (h *Hub) Publish(_ context.Context, event webhook.Event) error {
	if event.Issue == nil {
		return nil
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if c.session.ApplyIssueUpdate(event.Issue) {
			c.sendView(c.session.View())
			delivered++
		}
	}

	h.logger.WithFields(logrus.Fields{
		"event_type": event.Type,
		"issue_id":   event.IssueID,
		"sessions":   delivered,
	}).Debug("Issue event fanned out to map sessions")
	return nil
}

// Count - число подключенных клиентов
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close закрывает все подключения
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.shutdown()
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
		return true
	}
	return slices.ContainsFunc(allowed, func(a string) bool {
		return strings.EqualFold(strings.TrimRight(a, "/"), strings.TrimRight(origin, "/"))
	})
}
