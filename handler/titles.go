package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/watchlist/data/dto"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/service"
)

// CreateTitle godoc
// @Summary Add a new title to the watchlist
// @Description This endpoint adds a new title to the watchlist (admin only)
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateTitleRequestBody true "JSON payload required to create a title"
// @Success 201 {object} data.Title
// @Failure 400
// @Failure 403
// @Failure 500
// @Router /v1/watchlist [post]
func (h *Handler) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateTitleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	title, err := h.service.CreateTitle(user, requestBody.Title, requestBody.Storyline, requestBody.PlatformID, requestBody.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationRequired):
			h.authenticationRequiredResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/watchlist/%d", title.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"title": title}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowTitle godoc
// @Summary Show details of a title
// @Description This endpoint shows the details of a specific title, including its rating aggregates
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of title to show"
// @Success 200 {object} data.Title
// @Failure 404
// @Failure 500
// @Router /v1/watchlist/{titleId} [get]
func (h *Handler) showTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	title, err := h.service.ShowTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListTitles godoc
// @Summary List watchlist titles
// @Description This endpoint lists watchlist titles. Results are paginated and sortable
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort query string false "Sort order"
// @Success 200 {array} data.Title
// @Failure 400
// @Failure 500
// @Router /v1/watchlist [get]
func (h *Handler) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var qs dto.QsListTitles
	v := validator.New()
	query := r.URL.Query()
	qs.Filters.Page = h.readInt(query, "page", 1, v)
	qs.Filters.PageSize = h.readInt(query, "page_size", 20, v)
	qs.Filters.Sort = h.readString(query, "sort", "id")
	qs.Filters.SortSafeList = []string{"id", "title", "avg_rating", "created_at", "-id", "-title", "-avg_rating", "-created_at"}
	if !v.Valid() {
		h.failedValidationResponse(w, r, service.ValidationError{Fields: v.Errors})
		return
	}
	titles, metadata, err := h.service.ListTitles(qs.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"titles": titles, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SearchTitles godoc
// @Summary Search watchlist titles
// @Description This endpoint searches titles by substring match on the title name or platform name. Results use cursor pagination
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param q query string false "Search term"
// @Param cursor query string false "Opaque cursor for the next page"
// @Param page_size query int false "Page size"
// @Success 200 {array} data.Title
// @Failure 400
// @Failure 500
// @Router /v1/search/watchlist [get]
func (h *Handler) searchTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var qs dto.QsSearchTitles
	v := validator.New()
	query := r.URL.Query()
	qs.Search = h.readString(query, "q", "")
	qs.Cursor = h.readString(query, "cursor", "")
	qs.PageSize = h.readInt(query, "page_size", 20, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, service.ValidationError{Fields: v.Errors})
		return
	}
	titles, next, err := h.service.SearchTitles(qs.Search, qs.Cursor, qs.PageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	env := envelope{"titles": titles}
	if next != nil {
		env["next_cursor"] = next.Encode()
	}
	err = h.encodeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateTitle godoc
// @Summary Update a title
// @Description This endpoint updates a title's descriptive fields (admin only). Rating aggregates cannot be set
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to update"
// @Param body body dto.UpdateTitleRequestBody true "JSON payload with fields to update"
// @Success 200 {object} data.Title
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/watchlist/{titleId} [patch]
func (h *Handler) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateTitleRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	title, err := h.service.UpdateTitle(user, titleID, requestBody.Title, requestBody.Storyline, requestBody.PlatformID, requestBody.Active)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteTitle godoc
// @Summary Delete a title
// @Description This endpoint deletes a title and its reviews (admin only)
// @Tags watchlist
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to delete"
// @Success 204
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/watchlist/{titleId} [delete]
func (h *Handler) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteTitle(user, titleID)
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
