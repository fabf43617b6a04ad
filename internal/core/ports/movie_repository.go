package ports

import (
	"context"
	"math"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// MovieQuery is a validated listing request ready for the store.
// Zero values mean "no filter".
type MovieQuery struct {
	Search         string             // case-insensitive substring on title or description
	Year           *int               // exact year
	AllowedRatings []domain.AgeRating // ageRating must be one of these when non-empty
	Page           int                // 1-based
	Limit          int
}

// Skip is the number of records before the requested page.
func (q MovieQuery) Skip() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if int64(q.Page-1) > math.MaxInt64/int64(q.Limit) {
		return math.MaxInt64
	}
	return int64(q.Page-1) * int64(q.Limit)
}

// MovieRepository defines persistence operations for the catalog.
// Results of List are sorted by year, newest first.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, q MovieQuery) ([]*domain.Movie, int64, error)
	// Update replaces every mutable field of the stored movie with m's values.
	Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, movies []*domain.Movie) (int, error)
}
