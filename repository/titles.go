package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/watchlist/data"
)

type titles interface {
	CreateTitle(title *data.Title) error
	GetTitle(titleID int64) (*data.Title, error)
	GetAllTitles(filters data.Filters) ([]*data.Title, data.Metadata, error)
	SearchTitles(search string, cursor *data.Cursor, pageSize int) ([]*data.Title, *data.Cursor, error)
	UpdateTitle(title *data.Title) error
	DeleteTitle(titleID int64) error
}

// CreateTitle creates a new title record.
func (r *repository) CreateTitle(title *data.Title) error {
	query := `
		INSERT INTO titles (title, storyline, platform_id, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	args := []interface{}{title.Title, title.Storyline, title.PlatformID, title.Active}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&title.ID, &title.CreatedAt, &title.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "titles" violates foreign key constraint "titles_platform_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetTitle retrieves a title record by its ID, including the name of the
// platform that carries it.
func (r *repository) GetTitle(titleID int64) (*data.Title, error) {
	if titleID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT titles.id, titles.created_at, titles.title, titles.storyline, titles.platform_id, platforms.name, titles.active, titles.avg_rating, titles.number_rating, titles.version
		FROM titles
		INNER JOIN platforms ON titles.platform_id = platforms.id
		WHERE titles.id = $1`
	var title data.Title
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, titleID).Scan(
		&title.ID,
		&title.CreatedAt,
		&title.Title,
		&title.Storyline,
		&title.PlatformID,
		&title.Platform,
		&title.Active,
		&title.AvgRating,
		&title.NumberRating,
		&title.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &title, nil
}

// GetAllTitles retrieves a paginated list of all title records.
// Records can be sorted.
func (r *repository) GetAllTitles(filters data.Filters) ([]*data.Title, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), titles.id, titles.created_at, titles.title, titles.storyline, titles.platform_id, platforms.name, titles.active, titles.avg_rating, titles.number_rating, titles.version
		FROM titles
		INNER JOIN platforms ON titles.platform_id = platforms.id
		ORDER BY %s %s, titles.id ASC
		LIMIT $1 OFFSET $2`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	titles := []*data.Title{}
	for rows.Next() {
		var title data.Title
		err := rows.Scan(
			&totalRecords,
			&title.ID,
			&title.CreatedAt,
			&title.Title,
			&title.Storyline,
			&title.PlatformID,
			&title.Platform,
			&title.Active,
			&title.AvgRating,
			&title.NumberRating,
			&title.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		titles = append(titles, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return titles, metadata, nil
}

// SearchTitles retrieves title records whose name or platform name contains
// the search term. Results are keyset-paginated on descending id so their
// ordering stays stable while new titles are inserted: the returned cursor
// points past the last row of this page, or is nil on the final page.
func (r *repository) SearchTitles(search string, cursor *data.Cursor, pageSize int) ([]*data.Title, *data.Cursor, error) {
	afterID := int64(0)
	if cursor != nil {
		afterID = cursor.ID
	}
	query := `
		SELECT titles.id, titles.created_at, titles.title, titles.storyline, titles.platform_id, platforms.name, titles.active, titles.avg_rating, titles.number_rating, titles.version
		FROM titles
		INNER JOIN platforms ON titles.platform_id = platforms.id
		WHERE (titles.title ILIKE '%' || $1 || '%' OR platforms.name ILIKE '%' || $1 || '%')
		AND ($2 = 0 OR titles.id < $2)
		ORDER BY titles.id DESC
		LIMIT $3`
	args := []interface{}{search, afterID, pageSize + 1}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	titles := []*data.Title{}
	for rows.Next() {
		var title data.Title
		err := rows.Scan(
			&title.ID,
			&title.CreatedAt,
			&title.Title,
			&title.Storyline,
			&title.PlatformID,
			&title.Platform,
			&title.Active,
			&title.AvgRating,
			&title.NumberRating,
			&title.Version,
		)
		if err != nil {
			return nil, nil, err
		}
		titles = append(titles, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, err
	}
	// The extra row fetched beyond pageSize only signals that another page
	// exists; it is not returned.
	var next *data.Cursor
	if len(titles) > pageSize {
		titles = titles[:pageSize]
		next = &data.Cursor{ID: titles[len(titles)-1].ID}
	}
	return titles, next, nil
}

// UpdateTitle updates a title record, including its rating aggregates.
func (r *repository) UpdateTitle(title *data.Title) error {
	query := `
		UPDATE titles
		SET title = $1, storyline = $2, platform_id = $3, active = $4, avg_rating = $5, number_rating = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`
	args := []interface{}{
		title.Title,
		title.Storyline,
		title.PlatformID,
		title.Active,
		title.AvgRating,
		title.NumberRating,
		title.ID,
		title.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&title.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "titles" violates foreign key constraint "titles_platform_id_fkey"`:
			return ErrRecordNotFound
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteTitle deletes a title record.
func (r *repository) DeleteTitle(titleID int64) error {
	if titleID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM titles
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, titleID)
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
