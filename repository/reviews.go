package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/watchlist/data"
)

type reviews interface {
	CreateReviewForTitle(review *data.Review, title *data.Title) error
	GetReview(reviewID int64) (*data.Review, error)
	UpdateReview(review *data.Review) error
	DeleteReview(reviewID int64) error
	ReviewExistsForUser(userID int64, titleID int64) (bool, error)
	GetAllReviewsForTitle(titleID int64, username string, active *bool, filters data.Filters) ([]*data.Review, data.Metadata, error)
	GetAllReviewsByUsername(username string, filters data.Filters) ([]*data.Review, data.Metadata, error)
}

// CreateReviewForTitle persists a new review together with the updated
// rating aggregates of its title as a single transaction. If either write
// fails neither is committed, so the aggregates can never drift from the
// set of stored reviews. A concurrent duplicate create that slipped past the
// service-level existence check lands on the (user_id, title_id) unique
// constraint here and reports ErrDuplicateRecord.
func (r *repository) CreateReviewForTitle(review *data.Review, title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE titles
		SET avg_rating = $1, number_rating = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`
	err = tx.QueryRowContext(ctx, updateQuery, title.AvgRating, title.NumberRating, title.ID, title.Version).Scan(&title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	insertQuery := `
		INSERT INTO reviews (title_id, user_id, rating, description, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`
	args := []interface{}{review.TitleID, review.UserID, review.Rating, review.Description, review.Active}
	err = tx.QueryRowContext(ctx, insertQuery, args...).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt, &review.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "reviews_user_id_title_id_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return tx.Commit()
}

// ReviewExistsForUser checks whether a review record by the user already
// exists for the title.
func (r *repository) ReviewExistsForUser(userID int64, titleID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews
			WHERE user_id = $1 AND title_id = $2
		)`
	var exists bool
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, userID, titleID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetReview retrieves a review record by its ID.
func (r *repository) GetReview(reviewID int64) (*data.Review, error) {
	if reviewID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT reviews.id, reviews.created_at, reviews.updated_at, reviews.title_id, reviews.user_id, users.username, reviews.rating, reviews.description, reviews.active, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.id = $1`
	var review data.Review
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.TitleID,
		&review.UserID,
		&review.Username,
		&review.Rating,
		&review.Description,
		&review.Active,
		&review.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &review, nil
}

// UpdateReview updates a review record.
func (r *repository) UpdateReview(review *data.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, description = $2, active = $3, updated_at = now(), version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING updated_at, version`
	args := []interface{}{review.Rating, review.Description, review.Active, review.ID, review.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&review.UpdatedAt, &review.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteReview deletes a review record.
func (r *repository) DeleteReview(reviewID int64) error {
	if reviewID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM reviews
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAllReviewsForTitle retrieves a paginated list of the reviews on a
// title, optionally narrowed to an exact reviewer username and active flag.
func (r *repository) GetAllReviewsForTitle(titleID int64, username string, active *bool, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), reviews.id, reviews.created_at, reviews.updated_at, reviews.title_id, reviews.user_id, users.username, reviews.rating, reviews.description, reviews.active, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.title_id = $1
		AND ($2 = '' OR users.username = $2)
		AND ($3::boolean IS NULL OR reviews.active = $3::boolean)
		ORDER BY %s %s, reviews.id ASC
		LIMIT $4 OFFSET $5`,
		filters.SortColumn(), filters.SortDirection())
	var activeArg interface{}
	if active != nil {
		activeArg = *active
	}
	args := []interface{}{titleID, username, activeArg, filters.Limit(), filters.Offset()}
	return r.queryReviews(query, args, filters)
}

// GetAllReviewsByUsername retrieves a paginated list of a user's reviews
// across all titles. An empty username matches nothing.
func (r *repository) GetAllReviewsByUsername(username string, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), reviews.id, reviews.created_at, reviews.updated_at, reviews.title_id, reviews.user_id, users.username, reviews.rating, reviews.description, reviews.active, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE users.username = $1
		ORDER BY %s %s, reviews.id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{username, filters.Limit(), filters.Offset()}
	return r.queryReviews(query, args, filters)
}

func (r *repository) queryReviews(query string, args []interface{}, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	reviews := []*data.Review{}
	for rows.Next() {
		var review data.Review
		err := rows.Scan(
			&totalRecords,
			&review.ID,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.TitleID,
			&review.UserID,
			&review.Username,
			&review.Rating,
			&review.Description,
			&review.Active,
			&review.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		reviews = append(reviews, &review)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return reviews, metadata, nil
}
