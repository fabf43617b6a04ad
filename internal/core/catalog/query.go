package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// BuildMovieQuery validates listing parameters. An unparsable year or an
// unknown maxRating is a validation failure; bad page and limit values fall
// back to their defaults and page is capped so its offset stays representable.
func BuildMovieQuery(f ports.MovieFilters) (ports.MovieQuery, error) {
	q := ports.MovieQuery{
		Search: strings.TrimSpace(f.Search),
		Page:   positiveInt(f.Page, DefaultPage),
		Limit:  positiveInt(f.Limit, DefaultLimit),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	// Past this page the skip no longer fits in an int64.
	if last := math.MaxInt64 / int64(q.Limit); int64(q.Page-1) > last {
		q.Page = int(last)
	}

	fields := make(map[string]string)

	if y := strings.TrimSpace(f.Year); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			fields["year"] = "year must be a whole number"
		} else {
			q.Year = &n
		}
	}

	if r := strings.TrimSpace(f.MaxRating); r != "" {
		allowed, ok := domain.UpTo(domain.AgeRating(strings.ToUpper(r)))
		if !ok {
			fields["maxRating"] = fmt.Sprintf("maxRating must be one of: %s", domain.AgeRatingNames())
		} else {
			q.AllowedRatings = allowed
		}
	}

	if len(fields) > 0 {
		return ports.MovieQuery{}, domain.Validation("invalid listing filters", fields)
	}
	return q, nil
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
