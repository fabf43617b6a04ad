package ports

import (
	"context"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// CatalogNotifier accepts catalog events without blocking the caller.
type CatalogNotifier interface {
	Notify(ev domain.CatalogEvent)
}

// CatalogPublisher delivers one event to the message broker.
type CatalogPublisher interface {
	Publish(ctx context.Context, ev domain.CatalogEvent) error
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) Notify(domain.CatalogEvent) {}
