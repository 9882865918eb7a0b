package service

import (
	"errors"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/mailer"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/repository"
)

type users interface {
	RegisterUser(username string, email string, password string) (*data.User, error)
	GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error)
}

// RegisterUser service registers a new user and sends a welcome email in
// the background.
func (s *service) RegisterUser(username string, email string, password string) (*data.User, error) {
	user := &data.User{
		Username: username,
		Email:    email,
		Admin:    false,
	}
	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.RegisterUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			return nil, failedValidation(v.Errors)
		case errors.Is(err, repository.ErrDuplicateUsername):
			v.AddError("username", "a user with this username already exists")
			return nil, failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	// Send welcome email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"username": user.Username,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// GetUserForToken retrieves the user associated with a token.
func (s *service) GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error) {
	v := validator.New()
	if data.ValidateTokenPlaintext(v, tokenPlaintext); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserForToken(tokenScope, tokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired token")
			return nil, failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return user, nil
}
