package sse

import (
	"time"

	"github.com/GTDGit/catalog_api/internal/models"
)

// ProductNotifier is the interface services use to emit product events.
type ProductNotifier interface {
	NotifyProductCreated(p *models.Product)
	NotifyProductUpdated(p *models.Product)
	NotifyProductDeleted(id string)
	NotifyProductRecovered(p *models.Product)
}

// HubNotifier implements ProductNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyProductCreated(p *models.Product) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(productToEvent(EventProductCreated, p))
}

func (n *HubNotifier) NotifyProductUpdated(p *models.Product) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(productToEvent(EventProductUpdated, p))
}

func (n *HubNotifier) NotifyProductDeleted(id string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&ProductEvent{
		Event:     EventProductDeleted,
		ProductID: id,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyProductRecovered(p *models.Product) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(productToEvent(EventProductRecovered, p))
}

func productToEvent(eventType EventType, p *models.Product) *ProductEvent {
	return &ProductEvent{
		Event:     eventType,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Tags:      p.Tags,
		Timestamp: time.Now(),
	}
}
