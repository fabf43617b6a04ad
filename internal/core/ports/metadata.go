package ports

import (
	"context"
	"encoding/json"
)

// TrailerProvider returns the upstream video listing for a TMDb movie id verbatim.
type TrailerProvider interface {
	Videos(ctx context.Context, tmdbID int) (json.RawMessage, error)
}

// UpstreamMovie is a catalog candidate fetched from the metadata provider.
type UpstreamMovie struct {
	ID          int
	Title       string
	Overview    string
	ReleaseDate string
	PosterPath  string
	GenreIDs    []int
}

// MovieSource feeds the catalog importer.
type MovieSource interface {
	Genres(ctx context.Context) (map[int]string, error)
	Popular(ctx context.Context, page int) ([]UpstreamMovie, error)
	// Certification returns the US certification for a movie, or "" when none is listed.
	Certification(ctx context.Context, tmdbID int) (string, error)
}

// ImportSummary reports the outcome of one catalog import run.
type ImportSummary struct {
	Fetched  int
	Imported int
	Skipped  int
	Removed  int64
}
