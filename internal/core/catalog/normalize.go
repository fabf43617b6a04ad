// Package catalog turns loosely typed movie payloads and listing parameters
// into the canonical shapes the store accepts.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// Canonical field names of a movie record.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldYear          = "year"
	FieldGenres        = "genres"
	FieldRating        = "rating"
	FieldAgeRating     = "ageRating"
	FieldPosterURL     = "posterUrl"
	FieldImage         = "image"
	FieldTrailerURL    = "trailerUrl"
	FieldExternalID    = "externalId"
	FieldIsKidFriendly = "isKidFriendly"
)

// aliases maps accepted input keys onto canonical fields.
var aliases = map[string]string{
	FieldTitle:         FieldTitle,
	FieldDescription:   FieldDescription,
	"overview":         FieldDescription,
	FieldYear:          FieldYear,
	"releaseYear":      FieldYear,
	FieldGenres:        FieldGenres,
	FieldRating:        FieldRating,
	FieldAgeRating:     FieldAgeRating,
	FieldPosterURL:     FieldPosterURL,
	FieldImage:         FieldImage,
	FieldTrailerURL:    FieldTrailerURL,
	FieldExternalID:    FieldExternalID,
	FieldIsKidFriendly: FieldIsKidFriendly,
}

// MovieDraft is a normalized movie payload. Nil pointers are nulls.
type MovieDraft struct {
	Title         *string
	Description   *string
	Year          *int
	Genres        []string
	Rating        *float64
	AgeRating     domain.AgeRating
	PosterURL     *string
	Image         *string
	TrailerURL    *string
	ExternalID    *string
	IsKidFriendly bool

	present map[string]bool
}

// Normalize coerces a decoded JSON body into a MovieDraft. It never fails;
// out-of-domain values are left for Validator to report.
func Normalize(raw map[string]any) MovieDraft {
	d := MovieDraft{
		Title:         trimmed(raw[FieldTitle]),
		Description:   trimmed(firstNonNil(raw, FieldDescription, "overview")),
		Year:          toYear(firstNonNil(raw, FieldYear, "releaseYear")),
		Genres:        toGenres(raw[FieldGenres]),
		Rating:        toNumber(raw[FieldRating]),
		AgeRating:     domain.RatingG,
		PosterURL:     trimmed(raw[FieldPosterURL]),
		Image:         mediaPath(trimmed(raw[FieldImage])),
		TrailerURL:    trimmed(raw[FieldTrailerURL]),
		ExternalID:    trimmed(raw[FieldExternalID]),
		IsKidFriendly: truthy(raw[FieldIsKidFriendly]),
		present:       make(map[string]bool),
	}
	if r := trimmed(raw[FieldAgeRating]); r != nil {
		d.AgeRating = domain.AgeRating(*r)
	}
	for k := range raw {
		if f, ok := aliases[k]; ok {
			d.present[f] = true
		}
	}
	return d
}

// Has reports whether the payload supplied field, under its name or an alias.
func (d MovieDraft) Has(field string) bool {
	return d.present[field]
}

// Fields returns the canonical names of every supplied field.
func (d MovieDraft) Fields() []string {
	out := make([]string, 0, len(d.present))
	for f := range d.present {
		out = append(out, f)
	}
	return out
}

// Canonical renders the draft as a plain payload using canonical keys.
func (d MovieDraft) Canonical() map[string]any {
	return map[string]any{
		FieldTitle:         deref(d.Title),
		FieldDescription:   deref(d.Description),
		FieldYear:          derefInt(d.Year),
		FieldGenres:        append([]string{}, d.Genres...),
		FieldRating:        derefFloat(d.Rating),
		FieldAgeRating:     string(d.AgeRating),
		FieldPosterURL:     deref(d.PosterURL),
		FieldImage:         deref(d.Image),
		FieldTrailerURL:    deref(d.TrailerURL),
		FieldExternalID:    deref(d.ExternalID),
		FieldIsKidFriendly: d.IsKidFriendly,
	}
}

// NewMovie builds a movie from a draft that passed create validation.
func (d MovieDraft) NewMovie(now time.Time) *domain.Movie {
	m := &domain.Movie{
		Description:   d.Description,
		Genres:        d.Genres,
		AgeRating:     d.AgeRating,
		PosterURL:     d.PosterURL,
		Image:         d.Image,
		TrailerURL:    d.TrailerURL,
		ExternalID:    d.ExternalID,
		IsKidFriendly: d.IsKidFriendly,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Year != nil {
		m.Year = *d.Year
	}
	if d.Rating != nil {
		m.Rating = *d.Rating
	}
	return m
}

// ApplyTo overwrites the fields of m that the payload supplied.
func (d MovieDraft) ApplyTo(m *domain.Movie, now time.Time) {
	if d.Has(FieldTitle) && d.Title != nil {
		m.Title = *d.Title
	}
	if d.Has(FieldDescription) {
		m.Description = d.Description
	}
	if d.Has(FieldYear) && d.Year != nil {
		m.Year = *d.Year
	}
	if d.Has(FieldGenres) {
		m.Genres = d.Genres
	}
	if d.Has(FieldRating) {
		m.Rating = 0
		if d.Rating != nil {
			m.Rating = *d.Rating
		}
	}
	if d.Has(FieldAgeRating) {
		m.AgeRating = d.AgeRating
	}
	if d.Has(FieldPosterURL) {
		m.PosterURL = d.PosterURL
	}
	if d.Has(FieldImage) {
		m.Image = d.Image
	}
	if d.Has(FieldTrailerURL) {
		m.TrailerURL = d.TrailerURL
	}
	if d.Has(FieldExternalID) {
		m.ExternalID = d.ExternalID
	}
	if d.Has(FieldIsKidFriendly) {
		m.IsKidFriendly = d.IsKidFriendly
	}
	m.UpdatedAt = now
}

func firstNonNil(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func trimmed(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// mediaPath prefixes "/" onto values that are neither absolute http(s) URLs
// nor root-relative paths.
func mediaPath(s *string) *string {
	if s == nil || IsMediaRef(*s) {
		return s
	}
	p := "/" + *s
	return &p
}

// IsMediaRef reports whether s is an absolute http(s) URL or a root-relative path.
func IsMediaRef(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "/")
}

func toYear(v any) *int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	y := int(f)
	return &y
}

func toNumber(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func toGenres(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, g := range t {
			if s := trimmed(g); s != nil {
				out = append(out, *s)
			}
		}
	case []string:
		for _, g := range t {
			if s := strings.TrimSpace(g); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// truthy follows JSON truthiness: false, 0, "", null and absent are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
