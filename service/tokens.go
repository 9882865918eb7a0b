package service

import (
	"errors"
	"time"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/repository"
)

type tokens interface {
	CreateAuthenticationToken(email string, password string) (*data.Token, error)
	DeleteAuthenticationTokens(userID int64) error
}

// CreateAuthenticationToken service issues a new bearer token for the user
// matching the credentials.
func (s *service) CreateAuthenticationToken(email string, password string) (*data.Token, error) {
	v := validator.New()
	data.ValidateEmail(v, email)
	data.ValidatePasswordPlaintext(v, password)
	if !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	token, err := s.repo.CreateNewToken(user.ID, 24*time.Hour, data.ScopeAuthentication)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteAuthenticationTokens revokes every authentication token the user
// holds, logging them out everywhere.
func (s *service) DeleteAuthenticationTokens(userID int64) error {
	return s.repo.DeleteAllTokensForUser(data.ScopeAuthentication, userID)
}
