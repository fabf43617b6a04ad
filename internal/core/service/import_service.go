package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/catalog"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
)

const (
	posterBaseURL      = "https://image.tmdb.org/t/p/w500"
	trailerSearchURL   = "https://www.youtube.com/results?search_query="
	maxImportedGenres  = 3
	certificationLimit = 4
)

var ErrNoGenres = errors.New("no genres returned by metadata provider")

// ImportService replaces the catalog with popular movies from the metadata provider.
type ImportService struct {
	source    ports.MovieSource
	repo      ports.MovieRepository
	validator *catalog.Validator
	logger    zerolog.Logger
	now       func() time.Time
}

func NewImportService(source ports.MovieSource, repo ports.MovieRepository, logger zerolog.Logger) *ImportService {
	return &ImportService{
		source:    source,
		repo:      repo,
		validator: catalog.NewValidator(nil),
		logger:    logger,
		now:       time.Now,
	}
}

// Import fetches the given number of popular pages and swaps them in for the
// current catalog. Entries without an overview or a release year are skipped.
func (s *ImportService) Import(ctx context.Context, pages int) (ports.ImportSummary, error) {
	var summary ports.ImportSummary
	if pages <= 0 {
		pages = 1
	}

	genres, err := s.source.Genres(ctx)
	if err != nil {
		return summary, fmt.Errorf("load genres: %w", err)
	}
	if len(genres) == 0 {
		return summary, ErrNoGenres
	}

	var upstream []ports.UpstreamMovie
	for page := 1; page <= pages; page++ {
		batch, err := s.source.Popular(ctx, page)
		if err != nil {
			return summary, fmt.Errorf("load popular page %d: %w", page, err)
		}
		upstream = append(upstream, batch...)
	}
	summary.Fetched = len(upstream)

	certs := make([]string, len(upstream))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(certificationLimit)
	for i, um := range upstream {
		g.Go(func() error {
			c, err := s.source.Certification(gctx, um.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn().Err(err).Int("tmdb_id", um.ID).Msg("certification lookup failed")
				return nil
			}
			certs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	now := s.now().UTC()
	movies := make([]*domain.Movie, 0, len(upstream))
	for i, um := range upstream {
		raw, ok := importPayload(um, genres, certs[i])
		if !ok {
			summary.Skipped++
			continue
		}
		draft := catalog.Normalize(raw)
		if err := s.validator.ValidateCreate(draft); err != nil {
			s.logger.Warn().Err(err).Int("tmdb_id", um.ID).Msg("skipping invalid movie")
			summary.Skipped++
			continue
		}
		movies = append(movies, draft.NewMovie(now))
	}

	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return summary, err
	}
	summary.Removed = removed

	if len(movies) > 0 {
		n, err := s.repo.InsertMany(ctx, movies)
		if err != nil {
			return summary, err
		}
		summary.Imported = n
		metrics.MovieMutationsTotal.WithLabelValues("import").Add(float64(n))
	}

	s.logger.Info().
		Int("fetched", summary.Fetched).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int64("removed", summary.Removed).
		Msg("catalog import finished")
	return summary, nil
}

// Destroy removes every movie from the catalog.
func (s *ImportService) Destroy(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("removed", n).Msg("catalog destroyed")
	return n, nil
}

// importPayload maps an upstream entry to a raw movie body, as a client would send it.
func importPayload(um ports.UpstreamMovie, genres map[int]string, cert string) (map[string]any, bool) {
	overview := strings.TrimSpace(um.Overview)
	if overview == "" || len(um.ReleaseDate) < 4 {
		return nil, false
	}

	names := make([]any, 0, maxImportedGenres)
	for _, id := range um.GenreIDs {
		if len(names) == maxImportedGenres {
			break
		}
		if name, ok := genres[id]; ok {
			names = append(names, name)
		}
	}

	rating := domain.AgeRating(cert)
	if !rating.Valid() {
		rating = domain.RatingPG13
	}

	raw := map[string]any{
		catalog.FieldTitle:         um.Title,
		"overview":                 overview,
		catalog.FieldYear:          um.ReleaseDate[:4],
		catalog.FieldGenres:        names,
		catalog.FieldAgeRating:     string(rating),
		catalog.FieldTrailerURL:    trailerSearchURL + url.QueryEscape(um.Title+" trailer"),
		catalog.FieldExternalID:    fmt.Sprint(um.ID),
		catalog.FieldIsKidFriendly: cert == string(domain.RatingG) || cert == string(domain.RatingPG),
	}
	if um.PosterPath != "" {
		raw[catalog.FieldImage] = posterBaseURL + um.PosterPath
	}
	return raw, true
}
