package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

func TestBuildMovieQuery_Defaults(t *testing.T) {
	q, err := BuildMovieQuery(ports.MovieFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Nil(t, q.Year)
	assert.Empty(t, q.AllowedRatings)
	assert.Equal(t, int64(0), q.Skip())
}

func TestBuildMovieQuery_MaxRatingExpandsPrefix(t *testing.T) {
	q, err := BuildMovieQuery(ports.MovieFilters{MaxRating: "PG-13"})
	require.NoError(t, err)
	assert.Equal(t, []domain.AgeRating{domain.RatingG, domain.RatingPG, domain.RatingPG13}, q.AllowedRatings)

	q, err = BuildMovieQuery(ports.MovieFilters{MaxRating: "nc-17"})
	require.NoError(t, err)
	assert.Len(t, q.AllowedRatings, 5)
}

func TestBuildMovieQuery_Year(t *testing.T) {
	q, err := BuildMovieQuery(ports.MovieFilters{Year: "1999"})
	require.NoError(t, err)
	require.NotNil(t, q.Year)
	assert.Equal(t, 1999, *q.Year)
}

func TestBuildMovieQuery_Search(t *testing.T) {
	q, err := BuildMovieQuery(ports.MovieFilters{Search: "  matrix "})
	require.NoError(t, err)
	assert.Equal(t, "matrix", q.Search)
}

func TestBuildMovieQuery_RejectsBadFilters(t *testing.T) {
	_, err := BuildMovieQuery(ports.MovieFilters{Year: "abc", MaxRating: "X"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "maxRating")
}

func TestBuildMovieQuery_Paging(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
		wantSkip            int64
	}{
		{"3", "10", 3, 10, 20},
		{"0", "-5", 1, 50, 0},
		{"x", "y", 1, 50, 0},
		{"2", "1000", 2, 100, 100},
	}
	for _, tc := range cases {
		q, err := BuildMovieQuery(ports.MovieFilters{Page: tc.page, Limit: tc.limit})
		require.NoError(t, err)
		assert.Equal(t, tc.wantPage, q.Page)
		assert.Equal(t, tc.wantLimit, q.Limit)
		assert.Equal(t, tc.wantSkip, q.Skip())
	}
}

func TestBuildMovieQuery_HugePageKeepsSkipPositive(t *testing.T) {
	q, err := BuildMovieQuery(ports.MovieFilters{Page: "9223372036854775807", Limit: "50"})
	require.NoError(t, err)
	assert.Equal(t, int(math.MaxInt64/50), q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Greater(t, q.Skip(), int64(0))

	q, err = BuildMovieQuery(ports.MovieFilters{Page: "9223372036854775807", Limit: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1), q.Skip())
}

func TestMovieQuery_SkipSaturates(t *testing.T) {
	q := ports.MovieQuery{Page: math.MaxInt64, Limit: 100}
	assert.Equal(t, int64(math.MaxInt64), q.Skip())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 7, TotalPages(61, 9))
}
