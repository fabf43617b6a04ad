package domain

import "strings"

// AgeRating is a content classification on the ordered scale G < PG < PG-13 < R < NC-17.
type AgeRating string

const (
	RatingG    AgeRating = "G"
	RatingPG   AgeRating = "PG"
	RatingPG13 AgeRating = "PG-13"
	RatingR    AgeRating = "R"
	RatingNC17 AgeRating = "NC-17"
)

// AgeRatingScale lists every rating from least to most restrictive.
var AgeRatingScale = []AgeRating{RatingG, RatingPG, RatingPG13, RatingR, RatingNC17}

// Index returns the position of r on the scale, or -1 when r is unknown.
func (r AgeRating) Index() int {
	for i, v := range AgeRatingScale {
		if v == r {
			return i
		}
	}
	return -1
}

func (r AgeRating) Valid() bool {
	return r.Index() >= 0
}

// UpTo returns the prefix of the scale ending at max, inclusive.
// The second result is false when max is not on the scale.
func UpTo(max AgeRating) ([]AgeRating, bool) {
	i := max.Index()
	if i < 0 {
		return nil, false
	}
	out := make([]AgeRating, i+1)
	copy(out, AgeRatingScale[:i+1])
	return out, true
}

// AgeRatingNames renders the scale as "G, PG, PG-13, R, NC-17" for error messages.
func AgeRatingNames() string {
	names := make([]string, len(AgeRatingScale))
	for i, r := range AgeRatingScale {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
