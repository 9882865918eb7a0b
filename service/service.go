package service

import (
	"fmt"
	"sync"

	"github.com/emzola/watchlist/config"
	"github.com/emzola/watchlist/internal/jsonlog"
	"github.com/emzola/watchlist/internal/permission"
	"github.com/emzola/watchlist/repository"
)

type Service interface {
	platforms
	titles
	reviews
	users
	tokens
}

// service defines the app's service layer. Write operations consult the
// permission policies before touching the repository: catalogPolicy guards
// platforms and titles, reviewPolicy guards reviews.
type service struct {
	config        config.Config
	wg            *sync.WaitGroup
	logger        *jsonlog.Logger
	repo          repository.Repository
	catalogPolicy permission.Policy
	reviewPolicy  permission.Policy
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config:        cfg,
		wg:            wg,
		logger:        logger,
		repo:          repo,
		catalogPolicy: permission.AdminOrReadOnly{},
		reviewPolicy:  permission.OwnerOrReadOnly{},
	}
}

// authorize translates a policy decision into the service error the handler
// layer maps onto 401 or 403.
func (s *service) authorize(decision permission.Decision) error {
	switch decision {
	case permission.Allow:
		return nil
	case permission.DenyAnonymous:
		return ErrAuthenticationRequired
	default:
		return ErrNotPermitted
	}
}

// background launches a function in a background goroutine, tracked by the
// server's wait group so graceful shutdown can drain it.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}
