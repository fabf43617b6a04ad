package ports

import (
	"context"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

type CreateProfileInput struct {
	Name         string
	Avatar       string
	MaxAgeRating string
}

// UpdateProfileInput holds the fields supplied by the caller; nil is "not sent".
type UpdateProfileInput struct {
	Name         *string
	Avatar       *string
	MaxAgeRating *string
}

// ProfileService scopes every operation to the calling identity.
type ProfileService interface {
	List(ctx context.Context, owner domain.Identity) ([]*domain.Profile, error)
	Create(ctx context.Context, owner domain.Identity, in CreateProfileInput) (*domain.Profile, error)
	Update(ctx context.Context, owner domain.Identity, id string, in UpdateProfileInput) (*domain.Profile, error)
	Delete(ctx context.Context, owner domain.Identity, id string) error
}
