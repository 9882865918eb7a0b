package service

import (
	"errors"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/permission"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/repository"
)

type platforms interface {
	CreatePlatform(caller *data.User, name string, about string, website string) (*data.Platform, error)
	ShowPlatform(platformID int64) (*data.Platform, error)
	ListPlatforms(filters data.Filters) ([]*data.Platform, data.Metadata, error)
	UpdatePlatform(caller *data.User, platformID int64, name *string, about *string, website *string) (*data.Platform, error)
	DeletePlatform(caller *data.User, platformID int64) error
}

// CreatePlatform service creates a new streaming platform. Only admin users
// may create platforms.
func (s *service) CreatePlatform(caller *data.User, name string, about string, website string) (*data.Platform, error) {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return nil, err
	}
	platform := &data.Platform{
		Name:    name,
		About:   about,
		Website: website,
	}
	v := validator.New()
	if data.ValidatePlatform(v, platform); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err := s.repo.CreatePlatform(platform)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("name", "a platform with this name already exists")
			return nil, failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return platform, nil
}

// ShowPlatform service retrieves the details of a streaming platform.
func (s *service) ShowPlatform(platformID int64) (*data.Platform, error) {
	platform, err := s.repo.GetPlatform(platformID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return platform, nil
}

// ListPlatforms service retrieves a paginated list of streaming platforms.
func (s *service) ListPlatforms(filters data.Filters) ([]*data.Platform, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	return s.repo.GetAllPlatforms(filters)
}

// UpdatePlatform service updates a streaming platform. Nil fields are left
// unchanged, so the same method serves both full and partial updates.
func (s *service) UpdatePlatform(caller *data.User, platformID int64, name *string, about *string, website *string) (*data.Platform, error) {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return nil, err
	}
	platform, err := s.repo.GetPlatform(platformID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if name != nil {
		platform.Name = *name
	}
	if about != nil {
		platform.About = *about
	}
	if website != nil {
		platform.Website = *website
	}
	v := validator.New()
	if data.ValidatePlatform(v, platform); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdatePlatform(platform)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("name", "a platform with this name already exists")
			return nil, failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return platform, nil
}

// DeletePlatform service deletes a streaming platform and, via the database
// cascade, the titles it carries.
func (s *service) DeletePlatform(caller *data.User, platformID int64) error {
	if err := s.authorize(s.catalogPolicy.Evaluate(caller, permission.OpWrite, 0)); err != nil {
		return err
	}
	err := s.repo.DeletePlatform(platformID)
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
