package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HashtagModel struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	Content   string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (HashtagModel) TableName() string {
	return "hashtags"
}

func (h *HashtagModel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
