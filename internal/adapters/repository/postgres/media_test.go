package postgres_test

import (
	"context"
	"testing"
	"time"

	"course-media/internal/adapters/repository/postgres"
	"course-media/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRecord(key string) *domain.MediaRecord {
	accessURL := "https://minio.example.com/media/" + key
	expiresAt := time.Now().Add(48 * time.Hour).UTC()
	return &domain.MediaRecord{
		ID:                 uuid.New(),
		Title:              "lesson one",
		Description:        "intro",
		StorageKey:         key,
		AccessURL:          &accessURL,
		AccessURLExpiresAt: &expiresAt,
		ContentType:        "video/mp4",
		SizeBytes:          2048,
	}
}

func TestSqlMediaRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSqlMediaRepository(dbConnection)

	t.Run("Create - Success", func(t *testing.T) {
		// Arrange
		truncate()
		record := newRecord("1700000000000-abcd1234-lesson.mp4")

		// Act
		err := repo.Create(ctx, record)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		require.Equal(t, record.ID, found.ID)
		require.Equal(t, record.StorageKey, found.StorageKey)
		require.NotNil(t, found.AccessURL)
		require.Equal(t, *record.AccessURL, *found.AccessURL)
	})

	t.Run("Create - Duplicate storage key", func(t *testing.T) {
		// Arrange
		truncate()
		record := newRecord("dup-key.mp4")
		require.NoError(t, repo.Create(ctx, record))

		other := newRecord("dup-key.mp4")

		// Act
		err := repo.Create(ctx, other)

		// Assert
		require.Error(t, err)
	})

	t.Run("FindByStorageKey - Success", func(t *testing.T) {
		// Arrange
		truncate()
		record := newRecord("by-key.mp4")
		require.NoError(t, repo.Create(ctx, record))

		// Act
		found, err := repo.FindByStorageKey(ctx, "by-key.mp4")

		// Assert
		require.NoError(t, err)
		require.Equal(t, record.ID, found.ID)
	})

	t.Run("FindByID - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		_, err := repo.FindByID(ctx, uuid.New())

		// Assert
		require.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("UpdateAccessURL - Success", func(t *testing.T) {
		// Arrange
		truncate()
		record := newRecord("refresh-me.mp4")
		require.NoError(t, repo.Create(ctx, record))

		newURL := "https://minio.example.com/media/refresh-me.mp4?sig=new"
		newExpiry := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)

		// Act
		err := repo.UpdateAccessURL(ctx, record.ID, newURL, newExpiry)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		require.NotNil(t, found.AccessURL)
		require.Equal(t, newURL, *found.AccessURL)
		require.NotNil(t, found.AccessURLExpiresAt)
		require.WithinDuration(t, newExpiry, *found.AccessURLExpiresAt, time.Second)
	})

	t.Run("UpdateAccessURL - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := repo.UpdateAccessURL(ctx, uuid.New(), "https://x", time.Now())

		// Assert
		require.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("UpdateObjectInfo - Success", func(t *testing.T) {
		// Arrange
		truncate()
		record := newRecord("resize-me.mp4")
		require.NoError(t, repo.Create(ctx, record))

		// Act
		err := repo.UpdateObjectInfo(ctx, record.ID, 4096, "video/webm")

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		require.Equal(t, int64(4096), found.SizeBytes)
		require.Equal(t, "video/webm", found.ContentType)
	})

	t.Run("FindBatch - filtered by ids and capped", func(t *testing.T) {
		// Arrange
		truncate()
		first := newRecord("batch-1.mp4")
		second := newRecord("batch-2.mp4")
		third := newRecord("batch-3.mp4")
		for _, record := range []*domain.MediaRecord{first, second, third} {
			require.NoError(t, repo.Create(ctx, record))
		}

		// Act
		byIDs, err := repo.FindBatch(ctx, []uuid.UUID{first.ID, third.ID}, 0)
		require.NoError(t, err)
		capped, err := repo.FindBatch(ctx, nil, 2)
		require.NoError(t, err)

		// Assert
		require.Len(t, byIDs, 2)
		require.Len(t, capped, 2)
	})

	t.Run("FindBatch - null expiry sorts first", func(t *testing.T) {
		// Arrange
		truncate()
		withURL := newRecord("has-url.mp4")
		require.NoError(t, repo.Create(ctx, withURL))

		noURL := newRecord("no-url.mp4")
		noURL.AccessURL = nil
		noURL.AccessURLExpiresAt = nil
		require.NoError(t, repo.Create(ctx, noURL))

		// Act
		records, err := repo.FindBatch(ctx, nil, 0)

		// Assert
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, noURL.ID, records[0].ID)
		require.Nil(t, records[0].AccessURL)
	})
}
