package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"course-media/internal/core/domain"
	"course-media/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlMediaRepository struct {
	db SQLQuerier
}

// NewSqlMediaRepository creates sqlMediaRepository that implements port.MediaRepository
func NewSqlMediaRepository(db SQLQuerier) port.MediaRepository {
	return &sqlMediaRepository{
		db: db,
	}
}

// Create inserts a new media record
func (s *sqlMediaRepository) Create(ctx context.Context, record *domain.MediaRecord) error {
	query := `INSERT INTO media_records (id, title, description, storage_key, access_url, access_url_expires_at, content_type, size_bytes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.Title,
		record.Description,
		record.StorageKey,
		record.AccessURL,
		record.AccessURLExpiresAt,
		record.ContentType,
		record.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("error inserting media record: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	query := `SELECT id, title, description, storage_key, access_url, access_url_expires_at,
                     content_type, size_bytes, created_at, updated_at
              FROM media_records
              WHERE id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// FindByStorageKey finds by storage key
func (s *sqlMediaRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.MediaRecord, error) {
	query := `SELECT id, title, description, storage_key, access_url, access_url_expires_at,
                     content_type, size_bytes, created_at, updated_at
              FROM media_records
              WHERE storage_key = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, storageKey))
}

// FindBatch returns records for the given ids, or the oldest-expiring records
// up to limit when ids is empty. limit <= 0 means no cap.
func (s *sqlMediaRepository) FindBatch(ctx context.Context, ids []uuid.UUID, limit int) ([]domain.MediaRecord, error) {
	query := `SELECT id, title, description, storage_key, access_url, access_url_expires_at,
                     content_type, size_bytes, created_at, updated_at
              FROM media_records`

	var args []any
	if len(ids) > 0 {
		query += ` WHERE id = ANY($1)`
		args = append(args, pq.Array(ids))
	}
	query += ` ORDER BY access_url_expires_at ASC NULLS FIRST`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying media records: %w", err)
	}
	defer rows.Close()

	var records []domain.MediaRecord
	for rows.Next() {
		var dbRec dbMediaRecord
		if err := rows.Scan(
			&dbRec.ID,
			&dbRec.Title,
			&dbRec.Description,
			&dbRec.StorageKey,
			&dbRec.AccessURL,
			&dbRec.AccessURLExpiresAt,
			&dbRec.ContentType,
			&dbRec.SizeBytes,
			&dbRec.CreatedAt,
			&dbRec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning media record: %w", err)
		}
		records = append(records, *dbRec.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media records: %w", err)
	}

	return records, nil
}

// UpdateAccessURL writes a fresh signed URL and its expiry as a pair
func (s *sqlMediaRepository) UpdateAccessURL(ctx context.Context, id uuid.UUID, accessURL string, expiresAt time.Time) error {
	query := `UPDATE media_records
              SET access_url = $1, access_url_expires_at = $2, updated_at = now()
              WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, accessURL, expiresAt, id)
	if err != nil {
		return fmt.Errorf("error updating media record access url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// UpdateObjectInfo reconciles the stored object's size and content type
func (s *sqlMediaRepository) UpdateObjectInfo(ctx context.Context, id uuid.UUID, sizeBytes int64, contentType string) error {
	query := `UPDATE media_records
              SET size_bytes = $1, content_type = $2, updated_at = now()
              WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, sizeBytes, contentType, id)
	if err != nil {
		return fmt.Errorf("error updating media record object info: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (s *sqlMediaRepository) scanOne(row *sql.Row) (*domain.MediaRecord, error) {
	var dbRec dbMediaRecord
	err := row.Scan(
		&dbRec.ID,
		&dbRec.Title,
		&dbRec.Description,
		&dbRec.StorageKey,
		&dbRec.AccessURL,
		&dbRec.AccessURLExpiresAt,
		&dbRec.ContentType,
		&dbRec.SizeBytes,
		&dbRec.CreatedAt,
		&dbRec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return dbRec.ToDomain(), nil
}

// dbMediaRecord represents a media record row
type dbMediaRecord struct {
	ID                 uuid.UUID      `db:"id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	StorageKey         string         `db:"storage_key"`
	AccessURL          sql.NullString `db:"access_url"`
	AccessURLExpiresAt sql.NullTime   `db:"access_url_expires_at"`
	ContentType        string         `db:"content_type"`
	SizeBytes          int64          `db:"size_bytes"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// ToDomain converts to domain.MediaRecord
func (r *dbMediaRecord) ToDomain() *domain.MediaRecord {
	record := &domain.MediaRecord{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		StorageKey:  r.StorageKey,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.AccessURL.Valid {
		record.AccessURL = &r.AccessURL.String
	}
	if r.AccessURLExpiresAt.Valid {
		record.AccessURLExpiresAt = &r.AccessURLExpiresAt.Time
	}
	return record
}
