package domain

import "time"

const (
	// MaxProfilesPerUser caps how many viewing profiles one account may hold.
	MaxProfilesPerUser = 5

	DefaultAvatar       = "/avatars/default.png"
	DefaultMaxAgeRating = RatingR
)

// Profile is a viewing persona belonging to exactly one user.
type Profile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	MaxAgeRating AgeRating `json:"maxAgeRating"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
