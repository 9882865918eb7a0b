package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/throttle"
	"github.com/emzola/watchlist/service"
)

func TestCreateReviewHandler(t *testing.T) {
	body := `{"rating": 4, "description": "solid", "active": true}`

	t.Run("anonymous caller gets 401 before the service runs", func(t *testing.T) {
		routes := newTestHandler(t, &fakeService{}, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/watchlist/1/reviews", body, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("want 401, got %d", w.Code)
		}
	})

	t.Run("authenticated create succeeds", func(t *testing.T) {
		svc := &fakeService{
			createReviewFn: func(caller *data.User, titleID int64, rating int8, description string, active bool) (*data.Review, error) {
				if caller.ID != 2 || titleID != 1 || rating != 4 {
					t.Errorf("unexpected arguments: caller %d title %d rating %d", caller.ID, titleID, rating)
				}
				return &data.Review{ID: 9, TitleID: titleID, UserID: caller.ID, Rating: rating}, nil
			},
		}
		withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/watchlist/1/reviews", body, testToken)
		if w.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != "/v1/reviews/9" {
			t.Errorf("want Location /v1/reviews/9, got %q", got)
		}
	})

	t.Run("duplicate review returns 400", func(t *testing.T) {
		svc := &fakeService{
			createReviewFn: func(caller *data.User, titleID int64, rating int8, description string, active bool) (*data.Review, error) {
				return nil, service.ErrDuplicateReview
			},
		}
		withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/watchlist/1/reviews", body, testToken)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})

	t.Run("create is throttled per user", func(t *testing.T) {
		svc := &fakeService{
			createReviewFn: func(caller *data.User, titleID int64, rating int8, description string, active bool) (*data.Review, error) {
				return &data.Review{ID: 1}, nil
			},
		}
		withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
		quotas := map[throttle.Scope]throttle.Quota{
			throttle.ScopeReviewCreate: {Requests: 2, Window: time.Minute},
		}
		routes := newTestHandler(t, svc, quotas)
		for i := 0; i < 2; i++ {
			w := doRequest(t, routes, http.MethodPost, "/v1/watchlist/1/reviews", body, testToken)
			if w.Code != http.StatusCreated {
				t.Fatalf("request %d: want 201, got %d", i+1, w.Code)
			}
		}
		w := doRequest(t, routes, http.MethodPost, "/v1/watchlist/1/reviews", body, testToken)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("want 429 after quota, got %d", w.Code)
		}
	})
}

func TestUpdateReviewHandler(t *testing.T) {
	t.Run("non-owner gets 403", func(t *testing.T) {
		svc := &fakeService{
			updateReviewFn: func(caller *data.User, reviewID int64, rating *int8, description *string, active *bool) (*data.Review, error) {
				return nil, service.ErrNotPermitted
			},
		}
		withAuthedUser(svc, &data.User{ID: 3, Username: "ben"})
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPatch, "/v1/reviews/9", `{"rating": 1}`, testToken)
		if w.Code != http.StatusForbidden {
			t.Fatalf("want 403, got %d", w.Code)
		}
	})

	t.Run("anonymous write gets 401", func(t *testing.T) {
		svc := &fakeService{
			updateReviewFn: func(caller *data.User, reviewID int64, rating *int8, description *string, active *bool) (*data.Review, error) {
				return nil, service.ErrAuthenticationRequired
			},
		}
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPatch, "/v1/reviews/9", `{"rating": 1}`, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("want 401, got %d", w.Code)
		}
	})

	t.Run("edit conflict gets 409", func(t *testing.T) {
		svc := &fakeService{
			updateReviewFn: func(caller *data.User, reviewID int64, rating *int8, description *string, active *bool) (*data.Review, error) {
				return nil, service.ErrEditConflict
			},
		}
		withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPatch, "/v1/reviews/9", `{"rating": 1}`, testToken)
		if w.Code != http.StatusConflict {
			t.Fatalf("want 409, got %d", w.Code)
		}
	})
}

func TestDeleteReviewHandler(t *testing.T) {
	svc := &fakeService{
		deleteReviewFn: func(caller *data.User, reviewID int64) error {
			if reviewID != 9 {
				return service.ErrRecordNotFound
			}
			return nil
		},
	}
	withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
	routes := newTestHandler(t, svc, nil)

	w := doRequest(t, routes, http.MethodDelete, "/v1/reviews/9", "", testToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
	w = doRequest(t, routes, http.MethodDelete, "/v1/reviews/10", "", testToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestListReviewsThrottleScopes(t *testing.T) {
	svc := &fakeService{
		listReviewsForTitleFn: func(titleID int64, username string, active *bool, filters data.Filters) ([]*data.Review, data.Metadata, error) {
			return []*data.Review{}, data.Metadata{}, nil
		},
	}
	withAuthedUser(svc, &data.User{ID: 2, Username: "ada"})
	quotas := map[throttle.Scope]throttle.Quota{
		throttle.ScopeReviewList:     {Requests: 5, Window: time.Minute},
		throttle.ScopeReviewListAnon: {Requests: 1, Window: time.Minute},
	}
	routes := newTestHandler(t, svc, quotas)

	// Anonymous callers burn the tighter anonymous quota.
	w := doRequest(t, routes, http.MethodGet, "/v1/watchlist/1/reviews", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("first anonymous list: want 200, got %d", w.Code)
	}
	w = doRequest(t, routes, http.MethodGet, "/v1/watchlist/1/reviews", "", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second anonymous list: want 429, got %d", w.Code)
	}

	// An authenticated caller is counted against the roomier scope and is
	// unaffected by the exhausted anonymous one.
	w = doRequest(t, routes, http.MethodGet, "/v1/watchlist/1/reviews", "", testToken)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated list: want 200, got %d", w.Code)
	}
}

func TestListReviewsByUsernameHandler(t *testing.T) {
	svc := &fakeService{
		listReviewsByUsernameFn: func(username string, filters data.Filters) ([]*data.Review, data.Metadata, error) {
			if username != "ada" {
				t.Errorf("want username ada, got %q", username)
			}
			return []*data.Review{{ID: 1, Username: username, Rating: 5}}, data.Metadata{TotalRecords: 1}, nil
		},
	}
	routes := newTestHandler(t, svc, nil)
	w := doRequest(t, routes, http.MethodGet, "/v1/reviews?username=ada", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInvalidBearerToken(t *testing.T) {
	routes := newTestHandler(t, &fakeService{}, nil)
	w := doRequest(t, routes, http.MethodGet, "/v1/healthcheck", "", "short")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 for malformed token, got %d", w.Code)
	}
}
