package repository

import (
	"context"
	"testing"
	"time"

	"devjournal/cmd/internal/domain/entity"
	"devjournal/cmd/internal/domain/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository opens an in-memory database whose clock moves one
// second forward every time it is read.
func newTestRepository(t *testing.T) *DefaultEntryRepository {
	t.Helper()

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	db, err := sqlite.Init(sqlite.Options{
		Path: ":memory:",
		NowFunc: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewEntryRepository(db)
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := &entity.Entry{Title: "first", Content: "body"}
	require.NoError(t, repo.Create(ctx, entry))

	_, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.True(t, entry.CreatedAt.Equal(entry.UpdatedAt))

	got, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.True(t, got.CreatedAt.Equal(entry.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(entry.UpdatedAt))
}

func TestFindByID_Missing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindAll_NewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, title := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, &entity.Entry{Title: title, Content: "x"}))
	}

	entries, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	titles := []string{entries[0].Title, entries[1].Title, entries[2].Title}
	assert.Equal(t, []string{"C", "B", "A"}, titles)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := &entity.Entry{Title: "old", Content: "old body"}
	require.NoError(t, repo.Create(ctx, entry))

	updated, err := repo.Update(ctx, entry.ID, "new", "new body")
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "new body", updated.Content)
	assert.True(t, updated.CreatedAt.Equal(entry.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(entry.UpdatedAt))
}

func TestUpdate_Missing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Update(context.Background(), uuid.NewString(), "t", "c")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := &entity.Entry{Title: "bye", Content: "x"}
	require.NoError(t, repo.Create(ctx, entry))

	deleted, err := repo.Delete(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
