package service

import (
	"errors"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/permission"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/repository"
)

type titles interface {
	CreateTitle(caller *data.User, name string, storyline string, platformID int64, active bool) (*data.Title, error)
	ShowTitle(titleID int64) (*data.Title, error)
	ListTitles(filters data.Filters) ([]*data.Title, data.Metadata, error)
	SearchTitles(search string, cursorToken string, pageSize int) ([]*data.Title, *data.Cursor, error)
	UpdateTitle(caller *data.User, titleID int64, name *string, storyline *string, platformID *int64, active *bool) (*data.Title, error)
	DeleteTitle(caller *data.User, titleID int64) error
}

// CreateTitle service adds a new title to the watchlist. Only admin users
// may create titles. The rating aggregates start at their zero state and are
// never taken from the request.
func (s *service) CreateTitle(caller *data.User, name string, storyline string, platformID int64, active bool) (*data.Title, error) {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return nil, err
	}
	title := &data.Title{
		Title:      name,
		Storyline:  storyline,
		PlatformID: platformID,
		Active:     active,
	}
	v := validator.New()
	if data.ValidateTitle(v, title); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err := s.repo.CreateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("platform_id", "must reference an existing platform")
			return nil, failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return title, nil
}

// ShowTitle service retrieves the details of a title.
func (s *service) ShowTitle(titleID int64) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return title, nil
}

// ListTitles service retrieves a paginated list of titles.
func (s *service) ListTitles(filters data.Filters) ([]*data.Title, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	return s.repo.GetAllTitles(filters)
}

// SearchTitles service retrieves a cursor-paginated page of titles whose
// name or platform name contains the search term. The returned cursor is
// nil when no further page exists.
func (s *service) SearchTitles(search string, cursorToken string, pageSize int) ([]*data.Title, *data.Cursor, error) {
	v := validator.New()
	v.Check(pageSize > 0, "page_size", "must be greater than zero")
	v.Check(pageSize <= 100, "page_size", "must be a maximum of 100")
	cursor, err := data.DecodeCursor(cursorToken)
	if err != nil {
		v.AddError("cursor", "must be a valid cursor token")
	}
	if !v.Valid() {
		return nil, nil, failedValidation(v.Errors)
	}
	return s.repo.SearchTitles(search, cursor, pageSize)
}

// UpdateTitle service updates a title's descriptive fields. Nil fields are
// left unchanged. The rating aggregates cannot be updated through here.
func (s *service) UpdateTitle(caller *data.User, titleID int64, name *string, storyline *string, platformID *int64, active *bool) (*data.Title, error) {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return nil, err
	}
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if name != nil {
		title.Title = *name
	}
	if storyline != nil {
		title.Storyline = *storyline
	}
	if platformID != nil {
		title.PlatformID = *platformID
	}
	if active != nil {
		title.Active = *active
	}
	v := validator.New()
	if data.ValidateTitle(v, title); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("platform_id", "must reference an existing platform")
			return nil, failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return title, nil
}

// DeleteTitle service removes a title and its reviews.
func (s *service) DeleteTitle(caller *data.User, titleID int64) error {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return err
	}
	err := s.repo.DeleteTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
