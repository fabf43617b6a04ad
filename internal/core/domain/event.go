package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEventType names a change applied to the movie catalog.
type CatalogEventType string

const (
	EventMovieCreated CatalogEventType = "movie.created"
	EventMovieUpdated CatalogEventType = "movie.updated"
	EventMovieDeleted CatalogEventType = "movie.deleted"
)

// CatalogEvent records a successful movie mutation for downstream consumers.
type CatalogEvent struct {
	ID         string           `json:"id"`
	Type       CatalogEventType `json:"type"`
	MovieID    string           `json:"movieId"`
	Title      string           `json:"title"`
	ActorID    string           `json:"actorId"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewCatalogEvent stamps a fresh event id and time.
func NewCatalogEvent(t CatalogEventType, m *Movie, actorID string, now time.Time) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.NewString(),
		Type:       t,
		MovieID:    m.ID,
		Title:      m.Title,
		ActorID:    actorID,
		OccurredAt: now.UTC(),
	}
}
