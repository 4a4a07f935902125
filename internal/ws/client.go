package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/localhire/internal/goroutine"
	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/query"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Типы сообщений сервера.
const (
	EventResult = "result"
	EventError  = "error"
)

// Message - сообщение сервера: "type" содержит имя события, "data" - полезную нагрузку.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client представляет одно подключение WebSocket к живому списку.
type Client struct {
	conn    *websocket.Conn
	hub     *Hub
	kind    string
	session Session
	send    chan []byte
	mu      sync.Mutex
	closed  bool
	log     *logrus.Entry
}

// NewClient создаёт нового клиента.
func NewClient(conn *websocket.Conn, hub *Hub, kind string, session Session) *Client {
	return &Client{
		conn:    conn,
		hub:     hub,
		kind:    kind,
		session: session,
		send:    make(chan []byte, 16),
		log:     logger.Component("ws").WithField("kind", kind),
	}
}

// Run отправляет первую страницу и обрабатывает сообщения до закрытия соединения.
func (c *Client) Run(ctx context.Context) {
	goroutine.SafeGo("ws write pump", c.writePump)
	c.push(EventResult, c.session.Snapshot())
	c.readPump(ctx)
}

// Close закрывает соединение. Повторный вызов ничего не делает.
func (c *Client) Close() {
	if c.shutdown() {
		c.hub.Unregister(c)
	}
}

// shutdown закрывает очередь отправки; writePump после этого закрывает соединение.
func (c *Client) shutdown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)
	return true
}

func (c *Client) readPump(ctx context.Context) {
	defer goroutine.DefaultRecoveryHandler.Recover("ws read pump")
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Debug("соединение закрыто")
			}
			return
		}

		var action query.Action
		if err := json.Unmarshal(raw, &action); err != nil {
			c.push(EventError, map[string]string{"error": "invalid action payload"})
			continue
		}

		result, err := c.session.Apply(action)
		if err != nil {
			c.push(EventError, map[string]string{"error": err.Error()})
			continue
		}
		c.push(EventResult, result)
	}
}

// push ставит сообщение в очередь. Переполненная очередь закрывает клиента.
func (c *Client) push(event string, data any) {
	raw, err := json.Marshal(Message{Type: event, Data: data})
	if err != nil {
		c.log.WithError(err).Error("не удалось сериализовать сообщение")
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	select {
	case c.send <- raw:
		c.mu.Unlock()
	default:
		c.mu.Unlock()
		c.log.Warn("очередь клиента переполнена")
		c.Close()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
