package dto

import "github.com/emzola/watchlist/data"

// CreateTitleRequestBody defines a request body for CreateTitle service.
type CreateTitleRequestBody struct {
	Title      string `json:"title"`
	Storyline  string `json:"storyline"`
	PlatformID int64  `json:"platform_id"`
	Active     bool   `json:"active"`
}

// UpdateTitleRequestBody defines a request body for UpdateTitle service.
type UpdateTitleRequestBody struct {
	Title      *string `json:"title"`
	Storyline  *string `json:"storyline"`
	PlatformID *int64  `json:"platform_id"`
	Active     *bool   `json:"active"`
}

// QsListTitles defines the query strings used for listing titles.
type QsListTitles struct {
	Filters data.Filters
}

// QsSearchTitles defines the query strings used for the title search.
type QsSearchTitles struct {
	Search   string
	Cursor   string
	PageSize int
}
