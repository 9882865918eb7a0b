package handler

import (
	"expvar"
	"net/http"

	"github.com/emzola/watchlist/internal/throttle"
	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/platforms", h.listPlatformsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/platforms", h.createPlatformHandler)
	router.HandlerFunc(http.MethodGet, "/v1/platforms/:platformId", h.showPlatformHandler)
	router.HandlerFunc(http.MethodPut, "/v1/platforms/:platformId", h.updatePlatformHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/platforms/:platformId", h.updatePlatformHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/platforms/:platformId", h.deletePlatformHandler)

	router.HandlerFunc(http.MethodGet, "/v1/watchlist", h.listTitlesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/watchlist", h.createTitleHandler)
	router.HandlerFunc(http.MethodGet, "/v1/watchlist/:titleId", h.showTitleHandler)
	router.HandlerFunc(http.MethodPut, "/v1/watchlist/:titleId", h.updateTitleHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/watchlist/:titleId", h.updateTitleHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/watchlist/:titleId", h.deleteTitleHandler)

	// A static "search" segment can't share the /v1/watchlist prefix with the
	// :titleId wildcard, so search lives on a sibling path.
	router.HandlerFunc(http.MethodGet, "/v1/search/watchlist", h.searchTitlesHandler)

	router.HandlerFunc(http.MethodPost, "/v1/watchlist/:titleId/reviews",
		h.requireAuthenticatedUser(h.throttle(throttle.ScopeReviewCreate, "", h.createReviewHandler)))
	router.HandlerFunc(http.MethodGet, "/v1/watchlist/:titleId/reviews",
		h.throttle(throttle.ScopeReviewList, throttle.ScopeReviewListAnon, h.listReviewsForTitleHandler))

	router.HandlerFunc(http.MethodGet, "/v1/reviews", h.listReviewsByUsernameHandler)
	router.HandlerFunc(http.MethodGet, "/v1/reviews/:reviewId",
		h.throttle(throttle.ScopeReviewDetail, "", h.showReviewHandler))
	router.HandlerFunc(http.MethodPut, "/v1/reviews/:reviewId",
		h.throttle(throttle.ScopeReviewDetail, "", h.updateReviewHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/reviews/:reviewId",
		h.throttle(throttle.ScopeReviewDetail, "", h.updateReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/reviews/:reviewId",
		h.throttle(throttle.ScopeReviewDetail, "", h.deleteReviewHandler))

	router.HandlerFunc(http.MethodPost, "/v1/users", h.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", h.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/tokens/authentication", h.requireAuthenticatedUser(h.deleteAuthenticationTokenHandler))

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
