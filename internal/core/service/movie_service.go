package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/catalog"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
)

type MovieService struct {
	repo      ports.MovieRepository
	validator *catalog.Validator
	notifier  ports.CatalogNotifier
	logger    zerolog.Logger
	now       func() time.Time
}

// NewMovieService wires the catalog service. A nil notifier discards events.
func NewMovieService(repo ports.MovieRepository, notifier ports.CatalogNotifier, logger zerolog.Logger) *MovieService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	s := &MovieService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
	s.validator = catalog.NewValidator(func() time.Time { return s.now() })
	return s
}

func (s *MovieService) List(ctx context.Context, filters ports.MovieFilters) (*ports.MoviePage, error) {
	q, err := catalog.BuildMovieQuery(filters)
	if err != nil {
		return nil, err
	}

	movies, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}

	return &ports.MoviePage{
		Movies:     movies,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: catalog.TotalPages(total, q.Limit),
	}, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, actor domain.Identity, raw map[string]any) (*domain.Movie, error) {
	draft := catalog.Normalize(raw)
	if err := s.validator.ValidateCreate(draft); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, draft.NewMovie(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	metrics.MovieMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("movie_id", created.ID).Str("actor_id", actor.UserID).Msg("movie created")
	s.notifier.Notify(domain.NewCatalogEvent(domain.EventMovieCreated, created, actor.UserID, s.now()))
	return created, nil
}

// Update loads the movie first so a missing id is reported before any
// payload problem. Only supplied fields are validated and applied.
func (s *MovieService) Update(ctx context.Context, actor domain.Identity, id string, raw map[string]any) (*domain.Movie, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := catalog.Normalize(raw)
	if err := s.validator.ValidateUpdate(draft); err != nil {
		return nil, err
	}

	draft.ApplyTo(current, s.now().UTC())
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	metrics.MovieMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().
		Str("movie_id", updated.ID).
		Str("actor_id", actor.UserID).
		Strs("fields", draft.Fields()).
		Msg("movie updated")
	s.notifier.Notify(domain.NewCatalogEvent(domain.EventMovieUpdated, updated, actor.UserID, s.now()))
	return updated, nil
}

func (s *MovieService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.MovieMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("movie_id", id).Str("actor_id", actor.UserID).Msg("movie deleted")
	s.notifier.Notify(domain.NewCatalogEvent(domain.EventMovieDeleted, current, actor.UserID, s.now()))
	return nil
}

func (s *MovieService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
