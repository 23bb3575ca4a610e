package movie

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a catalog entry. Rating is a pointer so an unrated movie can be
// told apart from one rated 0.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows a listing. Zero value matches everything.
type Filter struct {
	// Genre, when non-empty, must match exactly.
	Genre string
	// MinRating, when set, keeps only movies rated at or above it.
	MinRating *float64
}

// Matches reports whether m satisfies the filter.
func (f Filter) Matches(m Movie) bool {
	if f.Genre != "" && m.Genre != f.Genre {
		return false
	}
	if f.MinRating != nil {
		if m.Rating == nil || *m.Rating < *f.MinRating {
			return false
		}
	}
	return true
}
