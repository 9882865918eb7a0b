package service

import (
	"errors"

	"github.com/emzola/watchlist/data"
	"github.com/emzola/watchlist/internal/permission"
	"github.com/emzola/watchlist/internal/validator"
	"github.com/emzola/watchlist/repository"
)

type reviews interface {
	CreateReview(caller *data.User, titleID int64, rating int8, description string, active bool) (*data.Review, error)
	ShowReview(reviewID int64) (*data.Review, error)
	UpdateReview(caller *data.User, reviewID int64, rating *int8, description *string, active *bool) (*data.Review, error)
	DeleteReview(caller *data.User, reviewID int64) error
	ListReviewsForTitle(titleID int64, username string, active *bool, filters data.Filters) ([]*data.Review, data.Metadata, error)
	ListReviewsByUsername(username string, filters data.Filters) ([]*data.Review, data.Metadata, error)
}

// CreateReview service leaves a review on a title on behalf of the caller
// and folds the rating into the title's aggregates. The pre-check on an
// existing review gives a clean error for the common case; the unique
// constraint inside the transactional write catches the remaining race, so
// a user can never hold two reviews on one title.
func (s *service) CreateReview(caller *data.User, titleID int64, rating int8, description string, active bool) (*data.Review, error) {
	if err := s.authorize(s.reviewPolicy.Evaluate(caller, permission.OpWrite, caller.ID)); err != nil {
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
	exists, err := s.repo.ReviewExistsForUser(caller.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	review := &data.Review{
		TitleID:     titleID,
		UserID:      caller.ID,
		Username:    caller.Username,
		Rating:      rating,
		Description: description,
		Active:      active,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	title.RecordRating(rating)
	err = s.repo.CreateReviewForTitle(review, title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateReview
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// ShowReview service retrieves the details of a review.
func (s *service) ShowReview(reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// UpdateReview service updates a review. Only the review's owner or an
// admin may update it. Editing a rating does not re-blend the title's
// aggregates; only review creation moves them.
func (s *service) UpdateReview(caller *data.User, reviewID int64, rating *int8, description *string, active *bool) (*data.Review, error) {
	review, err := s.repo.GetReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if err := s.authorize(s.reviewPolicy.Evaluate(caller, permission.OpWrite, review.UserID)); err != nil {
		return nil, err
	}
	if rating != nil {
		review.Rating = *rating
	}
	if description != nil {
		review.Description = *description
	}
	if active != nil {
		review.Active = *active
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview service deletes a review. Only the review's owner or an
// admin may delete it.
func (s *service) DeleteReview(caller *data.User, reviewID int64) error {
	review, err := s.repo.GetReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	if err := s.authorize(s.reviewPolicy.Evaluate(caller, permission.OpWrite, review.UserID)); err != nil {
		return err
	}
	err = s.repo.DeleteReview(reviewID)
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

// ListReviewsForTitle service retrieves a paginated list of the reviews on a
// title, optionally narrowed by exact reviewer username and active flag.
func (s *service) ListReviewsForTitle(titleID int64, username string, active *bool, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	if _, err := s.repo.GetTitle(titleID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	return s.repo.GetAllReviewsForTitle(titleID, username, active, filters)
}

// ListReviewsByUsername service retrieves a paginated list of one user's
// reviews across all titles. An unknown username yields an empty page.
func (s *service) ListReviewsByUsername(username string, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	v := validator.New()
	v.Check(username != "", "username", "must be provided")
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	return s.repo.GetAllReviewsByUsername(username, filters)
}
