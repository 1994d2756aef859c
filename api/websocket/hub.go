package websocket

import (
	"sync"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/pkg/config"
)

const defaultBroadcastBuffer = 256

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *topicMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	settings   *Settings
}

type topicMessage struct {
	topic string
	data  []byte
}

func NewHub(cfg *config.WebSocketConfig) *Hub {
	settings := NewSettings(cfg)

	broadcastBuffer := defaultBroadcastBuffer
	if cfg != nil && cfg.BroadcastBuffer > 0 {
		broadcastBuffer = cfg.BroadcastBuffer
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *topicMessage, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		settings:   settings,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Infof("WebSocket client connected (total: %d)", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logger.Infof("WebSocket client disconnected (total: %d)", h.ClientCount())

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg *topicMessage) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		if !client.subscribed(msg.topic) {
			continue
		}
		select {
		case client.send <- msg.data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	if len(stale) == 0 {
		return
	}

	h.mu.Lock()
	for _, client := range stale {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
	}
	h.mu.Unlock()
}

// Broadcast queues a message for every client subscribed to topic.
func (h *Hub) Broadcast(topic string, data []byte) {
	select {
	case h.broadcast <- &topicMessage{topic: topic, data: data}:
	default:
		logger.Warn("Broadcast channel full, dropping message")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
