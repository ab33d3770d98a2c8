package persistent

import (
	"context"
	"testing"

	"clipstream/internal/entity"
	"clipstream/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashtagRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewHashtagRepository(db)

	first, err := repo.GetOrCreate(ctx, "#sunset")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.GetOrCreate(ctx, "#sunset")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.HashtagModel{}).Where("content = ?", "#sunset").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHashtagRepository_GetOrCreate_ConflictResolvesToWinner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewHashtagRepository(db)

	// Simulate a racing creator that won between the read and the insert
	existing := &model.HashtagModel{ID: "11111111-1111-1111-1111-111111111111", Content: "#race"}
	require.NoError(t, db.Create(existing).Error)

	tag, err := repo.GetOrCreate(ctx, "#race")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, tag.ID)
}

func TestHashtagRepository_GetByContent_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHashtagRepository(db)

	_, err := repo.GetByContent(context.Background(), "#missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMusicRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewMusicRepository(db)

	music := &entity.Music{Name: "song-alice", Song: "https://cdn/audio.mp3"}
	require.NoError(t, repo.Create(ctx, music))
	require.NotEmpty(t, music.ID)

	got, err := repo.GetByID(ctx, music.ID)
	require.NoError(t, err)
	assert.Equal(t, "song-alice", got.Name)
	assert.Equal(t, "https://cdn/audio.mp3", got.Song)
}

func TestMusicRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMusicRepository(db)

	_, err := repo.GetByID(context.Background(), "7b0e8a64-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
