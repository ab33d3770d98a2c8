package persistent

import (
	"context"
	"errors"

	"clipstream/internal/entity"
	"clipstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepository interface {
	GetOrCreate(ctx context.Context, content string) (*entity.Hashtag, error)
	GetByContent(ctx context.Context, content string) (*entity.Hashtag, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) GetByContent(ctx context.Context, content string) (*entity.Hashtag, error) {
	var tagModel model.HashtagModel
	err := r.db.WithContext(ctx).Where("content = ?", content).First(&tagModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToHashtagEntity(&tagModel), nil
}

// GetOrCreate resolves a hashtag by its exact content, creating it on first
// sight. Two racing creators of the same token are settled by the unique
// index: the insert is a no-op on conflict and the winner's row is re-read.
func (r *hashtagRepository) GetOrCreate(ctx context.Context, content string) (*entity.Hashtag, error) {
	tag, err := r.GetByContent(ctx, content)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	tagModel := &model.HashtagModel{
		ID:      uuid.New().String(),
		Content: content,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tagModel).Error
	if err != nil {
		return nil, err
	}

	return r.GetByContent(ctx, content)
}
