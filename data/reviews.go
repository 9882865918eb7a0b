package data

import (
	"time"

	"github.com/emzola/watchlist/internal/validator"
)

// Review defines a user review left on a title. A user may hold at most one
// review per title; the pair (UserID, TitleID) is unique.
type Review struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TitleID     int64     `json:"title_id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Rating      int8      `json:"rating"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	Version     int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Rating >= 1, "rating", "must be at least one")
	v.Check(review.Rating <= 5, "rating", "must not be greater than five")
	v.Check(len(review.Description) <= 1000, "description", "must not be more than 1000 bytes long")
}
