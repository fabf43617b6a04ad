package domain

import "time"

// MinMovieYear is the earliest accepted release year.
const MinMovieYear = 1888

// Movie is a catalog entry. It is not owned by any user.
// Optional text fields are nil when absent so they serialize as null.
type Movie struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Year          int       `json:"year"`
	Genres        []string  `json:"genres"`
	Rating        float64   `json:"rating"`
	AgeRating     AgeRating `json:"ageRating"`
	PosterURL     *string   `json:"posterUrl"`
	Image         *string   `json:"image"`
	TrailerURL    *string   `json:"trailerUrl"`
	ExternalID    *string   `json:"externalId"`
	IsKidFriendly bool      `json:"isKidFriendly"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
