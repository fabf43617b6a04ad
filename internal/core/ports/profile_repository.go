package ports

import (
	"context"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// ProfileChanges lists the fields to overwrite; nil means unchanged.
type ProfileChanges struct {
	Name         *string
	Avatar       *string
	MaxAgeRating *domain.AgeRating
}

// ProfileRepository persists profiles. Owned operations match on both the
// profile id and the owning user id, and report domain.ErrProfileNotFound
// when either does not match.
type ProfileRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Profile, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	UpdateOwned(ctx context.Context, id, userID string, changes ProfileChanges) (*domain.Profile, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}
