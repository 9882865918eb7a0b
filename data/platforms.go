package data

import (
	"time"

	"github.com/emzola/watchlist/internal/validator"
)

// Platform defines a streaming platform model.
type Platform struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	About     string    `json:"about,omitempty"`
	Website   string    `json:"website,omitempty"`
	Version   int32     `json:"-"`
}

func ValidatePlatform(v *validator.Validator, platform *Platform) {
	v.Check(platform.Name != "", "name", "must be provided")
	v.Check(len(platform.Name) <= 100, "name", "must not be more than 100 bytes long")
	v.Check(len(platform.About) <= 1000, "about", "must not be more than 1000 bytes long")
	v.Check(platform.Website != "", "website", "must be provided")
	v.Check(validator.Matches(platform.Website, validator.WebsiteRX), "website", "must be a valid URL")
}
