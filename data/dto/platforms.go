package dto

import "github.com/emzola/watchlist/data"

// CreatePlatformRequestBody defines a request body for CreatePlatform service.
type CreatePlatformRequestBody struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Website string `json:"website"`
}

// UpdatePlatformRequestBody defines a request body for UpdatePlatform service.
// Pointer fields distinguish an omitted field from an explicit zero value, so
// the same body serves PUT and PATCH.
type UpdatePlatformRequestBody struct {
	Name    *string `json:"name"`
	About   *string `json:"about"`
	Website *string `json:"website"`
}

// QsListPlatforms defines the query strings used for listing platforms.
type QsListPlatforms struct {
	Filters data.Filters
}
