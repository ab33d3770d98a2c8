package entity

import "time"

type Post struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	Content    string     `json:"content"`
	Media      string     `json:"media"`
	MusicID    string     `json:"music_id,omitempty"`
	Music      *Music     `json:"music,omitempty"`
	IsPrivate  bool       `json:"is_private"`
	Likes      []string   `json:"likes"`
	LikesCount int        `json:"likes_count"`
	Hashtags   []Hashtag  `json:"hashtags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type Music struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Song      string     `json:"song"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Hashtag struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PostView is a Post enriched with its author profile fetched from the
// identity service.
type PostView struct {
	Post
	Author *User `json:"author"`
}

type PostList struct {
	Items      []PostView `json:"items"`
	TotalCount int64      `json:"totalCount"`
}
