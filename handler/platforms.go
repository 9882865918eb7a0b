package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/watchlist/data/dto"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/service"
)

// CreatePlatform godoc
// @Summary Create a new streaming platform
// @Description This endpoint creates a new streaming platform (admin only)
// @Tags platforms
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreatePlatformRequestBody true "JSON payload required to create a platform"
// @Success 201 {object} data.Platform
// @Failure 400
// @Failure 403
// @Failure 500
// @Router /v1/platforms [post]
func (h *Handler) createPlatformHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreatePlatformRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	platform, err := h.service.CreatePlatform(user, requestBody.Name, requestBody.About, requestBody.Website)
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
	headers.Set("Location", fmt.Sprintf("/v1/platforms/%d", platform.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"platform": platform}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowPlatform godoc
// @Summary Show details of a streaming platform
// @Description This endpoint shows the details of a specific streaming platform
// @Tags platforms
// @Accept  json
// @Produce json
// @Param platformId path int true "ID of platform to show"
// @Success 200 {object} data.Platform
// @Failure 404
// @Failure 500
// @Router /v1/platforms/{platformId} [get]
func (h *Handler) showPlatformHandler(w http.ResponseWriter, r *http.Request) {
	platformID, err := h.readIDParam(r, "platformId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	platform, err := h.service.ShowPlatform(platformID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"platform": platform}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListPlatforms godoc
// @Summary List streaming platforms
// @Description This endpoint lists streaming platforms. Results are paginated and sortable
// @Tags platforms
// @Accept  json
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort query string false "Sort order"
// @Success 200 {array} data.Platform
// @Failure 400
// @Failure 500
// @Router /v1/platforms [get]
func (h *Handler) listPlatformsHandler(w http.ResponseWriter, r *http.Request) {
	var qs dto.QsListPlatforms
	v := validator.New()
	query := r.URL.Query()
	qs.Filters.Page = h.readInt(query, "page", 1, v)
	qs.Filters.PageSize = h.readInt(query, "page_size", 20, v)
	qs.Filters.Sort = h.readString(query, "sort", "id")
	qs.Filters.SortSafeList = []string{"id", "name", "created_at", "-id", "-name", "-created_at"}
	if !v.Valid() {
		h.failedValidationResponse(w, r, service.ValidationError{Fields: v.Errors})
		return
	}
	platforms, metadata, err := h.service.ListPlatforms(qs.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"platforms": platforms, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdatePlatform godoc
// @Summary Update a streaming platform
// @Description This endpoint updates a streaming platform (admin only). Omitted fields keep their values
// @Tags platforms
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param platformId path int true "ID of platform to update"
// @Param body body dto.UpdatePlatformRequestBody true "JSON payload with fields to update"
// @Success 200 {object} data.Platform
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/platforms/{platformId} [patch]
func (h *Handler) updatePlatformHandler(w http.ResponseWriter, r *http.Request) {
	platformID, err := h.readIDParam(r, "platformId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdatePlatformRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	platform, err := h.service.UpdatePlatform(user, platformID, requestBody.Name, requestBody.About, requestBody.Website)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"platform": platform}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeletePlatform godoc
// @Summary Delete a streaming platform
// @Description This endpoint deletes a streaming platform and its titles (admin only)
// @Tags platforms
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param platformId path int true "ID of platform to delete"
// @Success 204
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/platforms/{platformId} [delete]
func (h *Handler) deletePlatformHandler(w http.ResponseWriter, r *http.Request) {
	platformID, err := h.readIDParam(r, "platformId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeletePlatform(user, platformID)
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
