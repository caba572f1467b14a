package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/mobility_map/internal/markers"
	"github.com/shenikar/mobility_map/internal/session"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

var errClientClosed = errors.New("realtime: client closed")

// Client - одно подключение карты. Владеет своей сессией и синхронизатором маркеров.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	log  *logrus.Entry

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc

	session *session.Session
	markers *markers.Synchronizer
}

func newClient(h *Hub, conn *websocket.Conn, id string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		id:     id,
		hub:    h,
		conn:   conn,
		log:    h.logger.WithFields(logrus.Fields{"component": "realtime", "client_id": id}),
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	c.markers = markers.NewSynchronizer(wsSurface{c: c}, h.logger, h.opts)
	c.session = session.New(h.source, c.markers, c, h.logger)
	return c
}

// Notify реализует session.Notifier
func (c *Client) Notify(n session.Notification) {
	if err := c.enqueue(MsgTypeNotification, n); err != nil {
		c.log.WithError(err).Debug("Notification dropped")
	}
}

// enqueue никогда не блокируется: вызывается под локом синхронизатора.
// Переполненный буфер означает медленного клиента, соединение закрывается.
func (c *Client) enqueue(msgType string, data any) error {
	payload, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		return fmt.Errorf("realtime: failed to marshal %s message: %w", msgType, err)
	}

	select {
	case <-c.done:
		return errClientClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		c.log.Warn("Send buffer is full, dropping slow client")
		c.shutdown()
		return errClientClosed
	}
}

func (c *Client) sendView(v session.View) {
	if err := c.enqueue(MsgTypeView, v); err != nil {
		c.log.WithError(err).Debug("View dropped")
	}
}

// shutdown закрывает соединение; очистка сессии делается в readPump
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer func() {
		c.shutdown()
		c.hub.unregister(c)
		c.markers.Close()
		c.log.Info("Map client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("Unexpected websocket close")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.WithError(err).Debug("Invalid JSON from map client")
			c.Notify(session.Notification{Level: session.LevelError, Message: "invalid message"})
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg Message) {
	switch msg.Type {
	case MsgTypeSubscribe:
		city := strings.TrimSpace(msg.City)
		if city == "" {
			c.Notify(session.Notification{Level: session.LevelError, Message: "city is required"})
			return
		}
		// LoadCity ходит в бд; читаем следующие сообщения, не дожидаясь ответа
		go c.loadCity(city)

	case MsgTypeFilter:
		c.sendView(c.session.UpdateFilter(msg.Filter.Apply))

	case MsgTypePage:
		c.sendView(c.session.SetPage(msg.Page))

	case MsgTypeSelect, MsgTypeMarkerClick:
		c.sendView(c.session.Select(msg.IssueID))

	case MsgTypeMapReady:
		c.markers.Ready()

	case MsgTypeMapError:
		c.markers.Failed(errors.New(msg.Error))
		c.Notify(session.Notification{Level: session.LevelError, Message: "Map failed to load"})

	default:
		c.log.WithField("type", msg.Type).Debug("Unknown message type")
	}
}

func (c *Client) loadCity(city string) {
	if err := c.session.LoadCity(c.ctx, city); err != nil {
		return
	}
	c.sendView(c.session.View())
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case <-c.done:
			return

		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.WithError(err).Debug("Failed to write to map client")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
