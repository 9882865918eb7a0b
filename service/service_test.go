package service

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/emzola/watchlist/config"
	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/jsonlog"
	"github.com/emzola/watchlist/repository"
)

// mockRepo is an in-memory stand-in for the repository layer. It embeds the
// Repository interface so tests only implement the methods they exercise;
// calling anything else panics, which surfaces missing wiring immediately.
type mockRepo struct {
	repository.Repository

	platforms    map[int64]*data.Platform
	titles       map[int64]*data.Title
	reviews      map[int64]*data.Review
	users        map[int64]*data.User
	nextID       int64
	createdToken *data.Token
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		platforms: map[int64]*data.Platform{},
		titles:    map[int64]*data.Title{},
		reviews:   map[int64]*data.Review{},
		users:     map[int64]*data.User{},
		nextID:    1,
	}
}

func (m *mockRepo) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepo) CreatePlatform(platform *data.Platform) error {
	for _, p := range m.platforms {
		if p.Name == platform.Name {
			return repository.ErrDuplicateRecord
		}
	}
	platform.ID = m.id()
	platform.CreatedAt = time.Now()
	platform.Version = 1
	m.platforms[platform.ID] = platform
	return nil
}

func (m *mockRepo) GetPlatform(platformID int64) (*data.Platform, error) {
	platform, ok := m.platforms[platformID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	cp := *platform
	return &cp, nil
}

func (m *mockRepo) UpdatePlatform(platform *data.Platform) error {
	existing, ok := m.platforms[platform.ID]
	if !ok || existing.Version != platform.Version {
		return repository.ErrEditConflict
	}
	platform.Version++
	m.platforms[platform.ID] = platform
	return nil
}

func (m *mockRepo) DeletePlatform(platformID int64) error {
	if _, ok := m.platforms[platformID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.platforms, platformID)
	return nil
}

func (m *mockRepo) GetTitle(titleID int64) (*data.Title, error) {
	title, ok := m.titles[titleID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	cp := *title
	return &cp, nil
}

func (m *mockRepo) ReviewExistsForUser(userID int64, titleID int64) (bool, error) {
	for _, review := range m.reviews {
		if review.UserID == userID && review.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) CreateReviewForTitle(review *data.Review, title *data.Title) error {
	for _, existing := range m.reviews {
		if existing.UserID == review.UserID && existing.TitleID == review.TitleID {
			return repository.ErrDuplicateRecord
		}
	}
	stored, ok := m.titles[title.ID]
	if !ok || stored.Version != title.Version {
		return repository.ErrEditConflict
	}
	title.Version++
	m.titles[title.ID] = title
	review.ID = m.id()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	review.Version = 1
	m.reviews[review.ID] = review
	return nil
}

func (m *mockRepo) GetReview(reviewID int64) (*data.Review, error) {
	review, ok := m.reviews[reviewID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	cp := *review
	return &cp, nil
}

func (m *mockRepo) UpdateReview(review *data.Review) error {
	existing, ok := m.reviews[review.ID]
	if !ok || existing.Version != review.Version {
		return repository.ErrEditConflict
	}
	review.Version++
	m.reviews[review.ID] = review
	return nil
}

func (m *mockRepo) DeleteReview(reviewID int64) error {
	if _, ok := m.reviews[reviewID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.reviews, reviewID)
	return nil
}

func (m *mockRepo) GetUserByEmail(email string) (*data.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepo) CreateNewToken(userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	token := &data.Token{
		Plaintext: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}
	m.createdToken = token
	return token, nil
}

func (m *mockRepo) addTitle(t *data.Title) *data.Title {
	t.ID = m.id()
	t.Version = 1
	m.titles[t.ID] = t
	return t
}

func (m *mockRepo) addUser(u *data.User) *data.User {
	u.ID = m.id()
	u.Version = 1
	m.users[u.ID] = u
	return u
}

func newTestService(t *testing.T, repo repository.Repository) *service {
	t.Helper()
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelError)
	return New(config.Config{}, &wg, logger, repo)
}
