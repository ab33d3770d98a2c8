package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID   string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Media      string         `gorm:"type:varchar(500)" json:"media"`
	MusicID    *string        `gorm:"type:uuid;index" json:"music_id"`
	Music      *MusicModel    `gorm:"foreignKey:MusicID" json:"music,omitempty"`
	IsPrivate  bool           `gorm:"default:false" json:"is_private"`
	LikesCount int            `gorm:"default:0" json:"likes_count"`
	Likes      []LikeModel    `gorm:"foreignKey:PostID" json:"likes,omitempty"`
	Hashtags   []HashtagModel `gorm:"many2many:post_hashtags" json:"hashtags,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  *time.Time     `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
