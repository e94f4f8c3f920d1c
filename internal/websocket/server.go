package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yegors/wxpanel/pkg/logger"
)

// Message types exchanged with the browser
const (
	MessageTypeLookup        = "lookup"         // client asks for a city
	MessageTypeWeatherReport = "weather_report" // server sends a report
	MessageTypeLookupError   = "lookup_error"   // server sends the single user-facing error
	MessageTypeError         = "error"          // malformed or unknown client message
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Message represents a WebSocket message
type Message struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// MessageHandler defines the interface for handling incoming WebSocket messages
type MessageHandler interface {
	HandleMessage(client *Client, messageType string, data map[string]any) error
}

// Client represents a WebSocket client
type Client struct {
	conn   *websocket.Conn
	send   chan *Message
	server *Server
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
}

// Server accepts WebSocket connections and dispatches their messages
type Server struct {
	clients        map[*Client]bool
	upgrader       websocket.Upgrader
	logger         *logger.Logger
	mu             sync.RWMutex
	messageHandler MessageHandler
}

// NewServer creates a new WebSocket server
func NewServer(logger *logger.Logger) *Server {
	return &Server{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.Named("web-socket"),
	}
}

// SetMessageHandler sets the message handler for incoming WebSocket messages
func (s *Server) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

// ClientCount returns the number of open connections
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// HandleConnection upgrades the request and serves the connection until it closes
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection",
			logger.Error(err),
			logger.String("remote_addr", r.RemoteAddr))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		conn:   conn,
		send:   make(chan *Message, 16),
		server: s,
		ctx:    ctx,
		cancel: cancel,
	}

	s.mu.Lock()
	s.clients[client] = true
	clientCount := len(s.clients)
	s.mu.Unlock()

	s.logger.Debug("Client connected",
		logger.String("remote_addr", r.RemoteAddr),
		logger.Int("client_count", clientCount))

	go client.writePump()
	go client.readPump()
}

// CloseAll closes every open connection
func (s *Server) CloseAll() {
	s.mu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		c.Close()
	}
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	clientCount := len(s.clients)
	s.mu.Unlock()

	s.logger.Debug("Client disconnected", logger.Int("client_count", clientCount))
}

// Context is canceled when the connection closes
func (c *Client) Context() context.Context {
	return c.ctx
}

// readPump reads messages and hands them to the server's handler one at a time
func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.server.logger.Error("WebSocket read error", logger.Error(err))
			}
			return
		}

		var message Message
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			c.server.logger.Warn("Failed to parse WebSocket message", logger.Error(err))
			c.SendMessage(&Message{
				Type: MessageTypeError,
				Data: map[string]any{"message": "invalid message"},
			})
			continue
		}

		c.server.logger.Debug("Received WebSocket message",
			logger.String("type", message.Type),
			logger.String("client", c.conn.RemoteAddr().String()))

		if c.server.messageHandler == nil {
			continue
		}
		if err := c.server.messageHandler.HandleMessage(c, message.Type, message.Data); err != nil {
			c.server.logger.Warn("Failed to handle WebSocket message",
				logger.Error(err),
				logger.String("type", message.Type))
			c.SendMessage(&Message{
				Type: MessageTypeError,
				Data: map[string]any{"message": err.Error()},
			})
		}
	}
}

// writePump writes queued messages and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			data, err := json.Marshal(message)
			if err != nil {
				c.server.logger.Error("Failed to marshal message", logger.Error(err))
				continue
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			c.server.logger.Debug("Sent message to client",
				logger.String("message_type", message.Type),
				logger.String("message_length", fmt.Sprintf("%d bytes", len(data))))

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Close closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.cancel()
	c.conn.Close()
}

// SendMessage queues a message for this client; it reports false if the
// client is closed or its queue is full
func (c *Client) SendMessage(message *Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}
