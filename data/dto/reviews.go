package dto

import "github.com/emzola/watchlist/data"

// CreateReviewRequestBody defines a request body for CreateReview service.
type CreateReviewRequestBody struct {
	Rating      int8   `json:"rating"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// UpdateReviewRequestBody defines a request body for UpdateReview service.
type UpdateReviewRequestBody struct {
	Rating      *int8   `json:"rating"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// QsListReviewsForTitle defines the query strings used for listing the
// reviews on a title.
type QsListReviewsForTitle struct {
	Username string
	Active   *bool
	Filters  data.Filters
}

// QsListReviewsByUsername defines the query strings used for the flat
// review listing.
type QsListReviewsByUsername struct {
	Username string
	Filters  data.Filters
}
