package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// movieRecord is the shape checked by the validator. Tag names follow the
// canonical field names so error keys match the payload.
type movieRecord struct {
	Title     *string          `json:"title" validate:"required"`
	Year      *int             `json:"year" validate:"required,gte=1888,notfuture"`
	Genres    []string         `json:"genres" validate:"required,min=1"`
	Rating    *float64         `json:"rating" validate:"omitempty,gte=0,lte=10"`
	AgeRating domain.AgeRating `json:"ageRating" validate:"agerating"`
	PosterURL *string          `json:"posterUrl" validate:"omitempty,mediaref"`
	Image     *string          `json:"image" validate:"omitempty,mediaref"`
}

// Validator checks normalized movie drafts.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns a Validator. now bounds the latest accepted year; nil uses time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("agerating", func(fl validator.FieldLevel) bool {
		return domain.AgeRating(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("mediaref", func(fl validator.FieldLevel) bool {
		return IsMediaRef(fl.Field().String())
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(now().Year())
	})
	return &Validator{v: v, now: now}
}

// ValidateCreate checks every field of a new movie.
func (mv *Validator) ValidateCreate(d MovieDraft) error {
	return mv.check(d, nil)
}

// ValidateUpdate checks only the fields the payload supplied.
func (mv *Validator) ValidateUpdate(d MovieDraft) error {
	return mv.check(d, d.present)
}

func (mv *Validator) check(d MovieDraft, only map[string]bool) error {
	rec := movieRecord{
		Title:     d.Title,
		Year:      d.Year,
		Genres:    d.Genres,
		Rating:    d.Rating,
		AgeRating: d.AgeRating,
		PosterURL: d.PosterURL,
		Image:     d.Image,
	}
	err := mv.v.Struct(rec)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.Internal("movie validation", err)
	}

	fields := make(map[string]string)
	for _, fe := range ve {
		if only != nil && !only[fe.Field()] {
			continue
		}
		fields[fe.Field()] = mv.message(fe)
	}
	if len(fields) == 0 {
		return nil
	}
	return domain.Validation("invalid movie data", fields)
}

func (mv *Validator) message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if field == FieldYear {
			return "year is required and must be a number"
		}
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s item", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "notfuture":
		return fmt.Sprintf("%s cannot be later than %d", field, mv.now().Year())
	case "agerating":
		return fmt.Sprintf("%s must be one of: %s", field, domain.AgeRatingNames())
	case "mediaref":
		return field + " must be an http(s) URL or start with /"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
