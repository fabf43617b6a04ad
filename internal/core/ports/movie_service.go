package ports

import (
	"context"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// MovieFilters carries the raw listing query parameters as received.
type MovieFilters struct {
	Search    string
	Year      string
	MaxRating string
	Page      string
	Limit     string
}

// MoviePage is one page of listing results.
type MoviePage struct {
	Movies     []*domain.Movie
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MovieService orchestrates catalog reads and writes. Create and Update take
// the decoded JSON body so the normalizer can see exactly which keys were sent.
type MovieService interface {
	List(ctx context.Context, filters MovieFilters) (*MoviePage, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, actor domain.Identity, raw map[string]any) (*domain.Movie, error)
	Update(ctx context.Context, actor domain.Identity, id string, raw map[string]any) (*domain.Movie, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
	Count(ctx context.Context) (int64, error)
}
