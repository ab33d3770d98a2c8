package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MusicModel struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Song      string     `gorm:"type:varchar(500);not null" json:"song"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (MusicModel) TableName() string {
	return "music"
}

func (m *MusicModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
