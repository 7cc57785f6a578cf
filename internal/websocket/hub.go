package previewws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/schema"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type sceneComputer interface {
	Scene(params geometry.ParamsInput, layout geometry.LayoutInput) (geometry.Scene, error)
}

// Hub fans profile events out to every connected preview client. A single
// goroutine (Run) owns the client set.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopped    chan struct{}
	logger     *zap.Logger
}

// Client send queues are never closed; done tells WritePump to stop.
type Client struct {
	ID   string
	hub  *Hub
	conn Conn
	send chan []byte
	done chan struct{}
}

type Message struct {
	Type      string                 `json:"type"`
	Scene     *geometry.Scene        `json:"scene,omitempty"`
	Event     *services.ProfileEvent `json:"event,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Errors    schema.FieldErrors     `json:"errors,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

type incomingMessage struct {
	Type   string               `json:"type"`
	Params geometry.ParamsInput `json:"params"`
	Layout geometry.LayoutInput `json:"layout"`
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
		done: make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then stops every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug("preview client connected", zap.String("client_id", client.ID))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.Debug("preview client disconnected", zap.String("client_id", client.ID))
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					h.logger.Warn("dropping slow preview client", zap.String("client_id", client.ID))
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.done)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stopped:
		close(client.done)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}

// Notify queues a profile event for every client. It never blocks; events
// are dropped when the queue is full.
func (h *Hub) Notify(event services.ProfileEvent) {
	payload, err := encodeMessage(Message{Type: "profile", Event: &event})
	if err != nil {
		h.logger.Error("encode profile event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("preview broadcast queue full, dropping event", zap.String("event", event.Type))
	}
}

func encodeMessage(message Message) ([]byte, error) {
	if message.Timestamp == "" {
		message.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return json.Marshal(message)
}

// ReadPump answers "params" messages with the computed scene, to this client only.
func (c *Client) ReadPump(scenes sceneComputer) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming incomingMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.reply(Message{Type: "error", Error: "invalid message payload"})
			continue
		}
		if incoming.Type != "params" {
			c.reply(Message{Type: "error", Error: "unsupported message type"})
			continue
		}

		scene, err := scenes.Scene(incoming.Params, incoming.Layout)
		if err != nil {
			var fields schema.FieldErrors
			if errors.As(err, &fields) {
				c.reply(Message{Type: "error", Error: "Invalid render parameters", Errors: fields})
				continue
			}
			c.reply(Message{Type: "error", Error: "failed to compute scene"})
			continue
		}

		c.reply(Message{Type: "scene", Scene: &scene})
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) reply(message Message) {
	payload, err := encodeMessage(message)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
		c.hub.logger.Warn("preview client queue full", zap.String("client_id", c.ID))
	}
}
