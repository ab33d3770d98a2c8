package persistent

import (
	"context"
	"errors"

	"clipstream/internal/entity"
	"clipstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MusicRepository interface {
	Create(ctx context.Context, music *entity.Music) error
	GetByID(ctx context.Context, id string) (*entity.Music, error)
}

type musicRepository struct {
	db *gorm.DB
}

func NewMusicRepository(db *gorm.DB) MusicRepository {
	return &musicRepository{db: db}
}

func (r *musicRepository) Create(ctx context.Context, music *entity.Music) error {
	musicModel := ToMusicModel(music)
	if musicModel.ID == "" {
		musicModel.ID = uuid.New().String()
	}

	if err := r.db.WithContext(ctx).Create(musicModel).Error; err != nil {
		return err
	}

	*music = *ToMusicEntity(musicModel)
	return nil
}

func (r *musicRepository) GetByID(ctx context.Context, id string) (*entity.Music, error) {
	var musicModel model.MusicModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&musicModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToMusicEntity(&musicModel), nil
}
