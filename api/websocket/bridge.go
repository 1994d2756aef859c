package websocket

import (
	"context"

	"github.com/OldStager01/resource-sentinel/internal/logger"
	"github.com/OldStager01/resource-sentinel/pkg/models"
)

// EventBridge forwards engine events to WebSocket clients.
type EventBridge struct {
	hub        *Hub
	eventsChan <-chan *models.Event
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewEventBridge(hub *Hub, eventsChan <-chan *models.Event) *EventBridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBridge{
		hub:        hub,
		eventsChan: eventsChan,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (b *EventBridge) Start() {
	go b.run()
	logger.Info("WebSocket event bridge started")
}

func (b *EventBridge) Stop() {
	b.cancel()
	logger.Info("WebSocket event bridge stopped")
}

func (b *EventBridge) run() {
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.eventsChan:
			if !ok {
				logger.Info("Event channel closed, stopping bridge")
				return
			}
			b.forward(event)
		}
	}
}

func (b *EventBridge) forward(event *models.Event) {
	topic := topicFor(event.Type)
	if topic == "" {
		return
	}

	msg := &OutgoingMessage{
		Topic:     topic,
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Severity:  string(event.Severity),
		Resource:  event.Resource,
		Message:   event.Message,
		Data:      event.Data,
	}

	b.hub.Broadcast(topic, msg.JSON())
}
