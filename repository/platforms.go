package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/watchlist/data"
)

type platforms interface {
	CreatePlatform(platform *data.Platform) error
	GetPlatform(platformID int64) (*data.Platform, error)
	GetAllPlatforms(filters data.Filters) ([]*data.Platform, data.Metadata, error)
	UpdatePlatform(platform *data.Platform) error
	DeletePlatform(platformID int64) error
}

// CreatePlatform creates a new streaming platform record.
func (r *repository) CreatePlatform(platform *data.Platform) error {
	query := `
		INSERT INTO platforms (name, about, website)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version`
	args := []interface{}{platform.Name, platform.About, platform.Website}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&platform.ID, &platform.CreatedAt, &platform.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "platforms_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetPlatform retrieves a platform record by its ID.
func (r *repository) GetPlatform(platformID int64) (*data.Platform, error) {
	if platformID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, about, website, version
		FROM platforms
		WHERE id = $1`
	var platform data.Platform
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, platformID).Scan(
		&platform.ID,
		&platform.CreatedAt,
		&platform.Name,
		&platform.About,
		&platform.Website,
		&platform.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &platform, nil
}

// GetAllPlatforms retrieves a paginated list of all platform records.
// Records can be sorted.
func (r *repository) GetAllPlatforms(filters data.Filters) ([]*data.Platform, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, created_at, name, about, website, version
		FROM platforms
		ORDER BY %s %s, id ASC
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
	platforms := []*data.Platform{}
	for rows.Next() {
		var platform data.Platform
		err := rows.Scan(
			&totalRecords,
			&platform.ID,
			&platform.CreatedAt,
			&platform.Name,
			&platform.About,
			&platform.Website,
			&platform.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		platforms = append(platforms, &platform)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return platforms, metadata, nil
}

// UpdatePlatform updates a platform record.
func (r *repository) UpdatePlatform(platform *data.Platform) error {
	query := `
		UPDATE platforms
		SET name = $1, about = $2, website = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`
	args := []interface{}{platform.Name, platform.About, platform.Website, platform.ID, platform.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&platform.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "platforms_name_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeletePlatform deletes a platform record.
func (r *repository) DeletePlatform(platformID int64) error {
	if platformID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM platforms
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, platformID)
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
