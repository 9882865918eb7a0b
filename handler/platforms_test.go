package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/service"
)

func TestCreatePlatformHandler(t *testing.T) {
	body := `{"name": "Netflix", "about": "Streaming", "website": "https://netflix.com"}`

	t.Run("anonymous write is forbidden", func(t *testing.T) {
		svc := &fakeService{
			createPlatformFn: func(caller *data.User, name, about, website string) (*data.Platform, error) {
				if !caller.IsAnonymous() {
					t.Errorf("want anonymous caller, got user %d", caller.ID)
				}
				return nil, service.ErrNotPermitted
			},
		}
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/platforms", body, "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("want 403, got %d", w.Code)
		}
	})

	t.Run("admin create succeeds with location header", func(t *testing.T) {
		svc := &fakeService{
			createPlatformFn: func(caller *data.User, name, about, website string) (*data.Platform, error) {
				return &data.Platform{ID: 7, Name: name, About: about, Website: website}, nil
			},
		}
		withAuthedUser(svc, &data.User{ID: 1, Username: "root", Admin: true})
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/platforms", body, testToken)
		if w.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != "/v1/platforms/7" {
			t.Errorf("want Location /v1/platforms/7, got %q", got)
		}
	})

	t.Run("validation failure returns 400 with field errors", func(t *testing.T) {
		svc := &fakeService{
			createPlatformFn: func(caller *data.User, name, about, website string) (*data.Platform, error) {
				return nil, errServiceValidation("website", "must be a valid URL")
			},
		}
		routes := newTestHandler(t, svc, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/platforms", body, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "must be a valid URL") {
			t.Errorf("field error missing from body: %s", w.Body.String())
		}
	})

	t.Run("malformed JSON body returns 400", func(t *testing.T) {
		routes := newTestHandler(t, &fakeService{}, nil)
		w := doRequest(t, routes, http.MethodPost, "/v1/platforms", `{"name": `, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})
}

func TestShowPlatformHandler(t *testing.T) {
	svc := &fakeService{
		showPlatformFn: func(platformID int64) (*data.Platform, error) {
			if platformID == 1 {
				return &data.Platform{ID: 1, Name: "Netflix"}, nil
			}
			return nil, service.ErrRecordNotFound
		},
	}
	routes := newTestHandler(t, svc, nil)

	w := doRequest(t, routes, http.MethodGet, "/v1/platforms/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	w = doRequest(t, routes, http.MethodGet, "/v1/platforms/42", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
	w = doRequest(t, routes, http.MethodGet, "/v1/platforms/abc", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 for non-numeric id, got %d", w.Code)
	}
}

func TestDeletePlatformHandler(t *testing.T) {
	svc := &fakeService{
		deletePlatformFn: func(caller *data.User, platformID int64) error {
			return nil
		},
	}
	withAuthedUser(svc, &data.User{ID: 1, Username: "root", Admin: true})
	routes := newTestHandler(t, svc, nil)
	w := doRequest(t, routes, http.MethodDelete, "/v1/platforms/1", "", testToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
}
