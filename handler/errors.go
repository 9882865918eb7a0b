package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/watchlist/service"
)

// logError logs an error message along with the request method and URL.
func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

// errorResponse sends a JSON-formatted error message with a given status code.
func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := envelope{"error": message}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse reports an unexpected problem at runtime.
func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

// notFoundResponse sends a 404 Not Found status code and JSON response.
func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

// methodNotAllowed sends a 405 Method Not Allowed status code and JSON response.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request status code and JSON response.
func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse rejects a request whose fields failed validation.
// The per-field messages are sent when the service supplied them.
func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var vErr service.ValidationError
	if errors.As(err, &vErr) {
		h.errorResponse(w, r, http.StatusBadRequest, vErr.Fields)
		return
	}
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// duplicateReviewResponse rejects a second review by the same user on the
// same title.
func (h *Handler) duplicateReviewResponse(w http.ResponseWriter, r *http.Request) {
	message := "you have already reviewed this title"
	h.errorResponse(w, r, http.StatusBadRequest, message)
}

// editConflictResponse reports a lost optimistic-locking race.
func (h *Handler) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "unable to update the record due to an edit conflict, please try again"
	h.errorResponse(w, r, http.StatusConflict, message)
}

// rateLimitExceededResponse sends a 429 Too Many Requests status code and JSON response.
func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, message)
}

// invalidCredentialsResponse sends a 401 Unauthorized status code and JSON response.
func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "invalid authentication credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

// invalidAuthenticationTokenResponse sends a 401 Unauthorized status code and
// JSON response when a bearer token is malformed, expired or unknown.
func (h *Handler) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	message := "invalid or missing authentication token"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

// authenticationRequiredResponse rejects an anonymous caller from an
// operation that needs an identity.
func (h *Handler) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	message := "you must be authenticated to access this resource"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

// notPermittedResponse rejects a caller whose identity lacks the rights for
// the operation.
func (h *Handler) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	message := "your user account doesn't have the necessary permissions to access this resource"
	h.errorResponse(w, r, http.StatusForbidden, message)
}
