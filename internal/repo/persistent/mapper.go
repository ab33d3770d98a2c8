package persistent

import (
	"clipstream/internal/entity"
	"clipstream/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		Content:    m.Content,
		Media:      m.Media,
		IsPrivate:  m.IsPrivate,
		LikesCount: m.LikesCount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if m.MusicID != nil {
		post.MusicID = *m.MusicID
	}
	post.Music = ToMusicEntity(m.Music)

	if len(m.Likes) > 0 {
		post.Likes = make([]string, len(m.Likes))
		for i, like := range m.Likes {
			post.Likes[i] = like.UserID
		}
	}

	if len(m.Hashtags) > 0 {
		post.Hashtags = make([]entity.Hashtag, len(m.Hashtags))
		for i, tag := range m.Hashtags {
			post.Hashtags[i] = *ToHashtagEntity(&tag)
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:         e.ID,
		AuthorID:   e.AuthorID,
		Content:    e.Content,
		Media:      e.Media,
		IsPrivate:  e.IsPrivate,
		LikesCount: e.LikesCount,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}

	if e.MusicID != "" {
		musicID := e.MusicID
		post.MusicID = &musicID
	}

	if len(e.Hashtags) > 0 {
		post.Hashtags = make([]model.HashtagModel, len(e.Hashtags))
		for i, tag := range e.Hashtags {
			post.Hashtags[i] = *ToHashtagModel(&tag)
		}
	}

	return post
}

func ToMusicEntity(m *model.MusicModel) *entity.Music {
	if m == nil {
		return nil
	}

	return &entity.Music{
		ID:        m.ID,
		Name:      m.Name,
		Song:      m.Song,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMusicModel(e *entity.Music) *model.MusicModel {
	if e == nil {
		return nil
	}

	return &model.MusicModel{
		ID:        e.ID,
		Name:      e.Name,
		Song:      e.Song,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToHashtagEntity(m *model.HashtagModel) *entity.Hashtag {
	if m == nil {
		return nil
	}

	return &entity.Hashtag{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToHashtagModel(e *entity.Hashtag) *model.HashtagModel {
	if e == nil {
		return nil
	}

	return &model.HashtagModel{
		ID:        e.ID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
