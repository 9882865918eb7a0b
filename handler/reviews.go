package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/watchlist/data/dto"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/service"
)

// CreateReview godoc
// @Summary Create a new title review
// @Description This endpoint leaves a review on a title and folds the rating into the title's aggregates. One review per user per title
// @Tags reviews
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to review"
// @Param body body dto.CreateReviewRequestBody true "JSON payload required to create a review"
// @Success 201 {object} data.Review
// @Failure 400
// @Failure 401
// @Failure 404
// @Failure 429
// @Failure 500
// @Router /v1/watchlist/{titleId}/reviews [post]
func (h *Handler) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.CreateReviewRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	review, err := h.service.CreateReview(user, titleID, requestBody.Rating, requestBody.Description, requestBody.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationRequired):
			h.authenticationRequiredResponse(w, r)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrDuplicateReview):
			h.duplicateReviewResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/reviews/%d", review.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"review": review}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowReview godoc
// @Summary Show details of a review
// @Description This endpoint shows the details of a specific review
// @Tags reviews
// @Accept  json
// @Produce json
// @Param reviewId path int true "ID of review to show"
// @Success 200 {object} data.Review
// @Failure 404
// @Failure 429
// @Failure 500
// @Router /v1/reviews/{reviewId} [get]
func (h *Handler) showReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	review, err := h.service.ShowReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateReview godoc
// @Summary Update a review
// @Description This endpoint updates a review. Only the review's owner or an admin may update it
// @Tags reviews
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param reviewId path int true "ID of review to update"
// @Param body body dto.UpdateReviewRequestBody true "JSON payload with fields to update"
// @Success 200 {object} data.Review
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 429
// @Failure 500
// @Router /v1/reviews/{reviewId} [patch]
func (h *Handler) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateReviewRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	review, err := h.service.UpdateReview(user, reviewID, requestBody.Rating, requestBody.Description, requestBody.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationRequired):
			h.authenticationRequiredResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteReview godoc
// @Summary Delete a review
// @Description This endpoint deletes a review. Only the review's owner or an admin may delete it
// @Tags reviews
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param reviewId path int true "ID of review to delete"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 429
// @Failure 500
// @Router /v1/reviews/{reviewId} [delete]
func (h *Handler) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteReview(user, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationRequired):
			h.authenticationRequiredResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReviewsForTitle godoc
// @Summary List the reviews on a title
// @Description This endpoint lists the reviews on a title, optionally narrowed by exact reviewer username and active flag
// @Tags reviews
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of title"
// @Param username query string false "Exact reviewer username"
// @Param active query bool false "Review active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort query string false "Sort order"
// @Success 200 {array} data.Review
// @Failure 400
// @Failure 404
// @Failure 429
// @Failure 500
// @Router /v1/watchlist/{titleId}/reviews [get]
func (h *Handler) listReviewsForTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var qs dto.QsListReviewsForTitle
	v := validator.New()
	query := r.URL.Query()
	qs.Username = h.readString(query, "username", "")
	qs.Active = h.readOptionalBool(query, "active", v)
	qs.Filters.Page = h.readInt(query, "page", 1, v)
	qs.Filters.PageSize = h.readInt(query, "page_size", 20, v)
	qs.Filters.Sort = h.readString(query, "sort", "-reviews.created_at")
	qs.Filters.SortSafeList = []string{"reviews.id", "reviews.rating", "reviews.created_at", "-reviews.id", "-reviews.rating", "-reviews.created_at"}
	if !v.Valid() {
		h.failedValidationResponse(w, r, service.ValidationError{Fields: v.Errors})
		return
	}
	reviews, metadata, err := h.service.ListReviewsForTitle(titleID, qs.Username, qs.Active, qs.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reviews": reviews, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListReviewsByUsername godoc
// @Summary List a user's reviews
// @Description This endpoint lists one user's reviews across all titles, selected by exact username
// @Tags reviews
// @Accept  json
// @Produce json
// @Param username query string true "Exact reviewer username"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort query string false "Sort order"
// @Success 200 {array} data.Review
// @Failure 400
// @Failure 500
// @Router /v1/reviews [get]
func (h *Handler) listReviewsByUsernameHandler(w http.ResponseWriter, r *http.Request) {
	var qs dto.QsListReviewsByUsername
	v := validator.New()
	query := r.URL.Query()
	qs.Username = h.readString(query, "username", "")
	qs.Filters.Page = h.readInt(query, "page", 1, v)
	qs.Filters.PageSize = h.readInt(query, "page_size", 20, v)
	qs.Filters.Sort = h.readString(query, "sort", "-reviews.created_at")
	qs.Filters.SortSafeList = []string{"reviews.id", "reviews.rating", "reviews.created_at", "-reviews.id", "-reviews.rating", "-reviews.created_at"}
	if !v.Valid() {
		h.failedValidationResponse(w, r, service.ValidationError{Fields: v.Errors})
		return
	}
	reviews, metadata, err := h.service.ListReviewsByUsername(qs.Username, qs.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reviews": reviews, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
