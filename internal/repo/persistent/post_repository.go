package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clipstream/internal/entity"
	"clipstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListQuery is the structured query descriptor the use case builds and the
// repository translates. Filter keys are whitelisted column names.
type ListQuery struct {
	Filter    map[string]interface{}
	Q         string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// Offset is derived from the 1-indexed page.
func (q ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.PerPage
}

// sortableColumns guards the ORDER BY clause; anything else is ignored.
var sortableColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"likes_count": true,
	"content":     true,
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, query ListQuery) ([]*entity.Post, int64, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Hashtags are already persisted; write the post row and the join
		// references without touching hashtag rows themselves.
		if err := tx.Omit("Hashtags.*", "Music", "Likes").Create(postModel).Error; err != nil {
			return err
		}

		*post = *ToPostEntity(postModel)
		return nil
	})
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.WithContext(ctx).
		Preload("Music").
		Preload("Hashtags").
		Preload("Likes").
		Where("id = ?", id).
		First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(ctx context.Context, query ListQuery) ([]*entity.Post, int64, error) {
	apply := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&model.PostModel{})
		if len(query.Filter) > 0 {
			db = db.Where(query.Filter)
		}
		if query.Q != "" {
			db = db.Where("content LIKE ?", "%"+query.Q+"%")
		}
		return db
	}

	// Total reflects the filter before pagination
	var total int64
	if err := apply(r.db.WithContext(ctx)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := apply(r.db.WithContext(ctx)).
		Preload("Music").
		Preload("Hashtags").
		Preload("Likes")

	if sortableColumns[query.SortBy] {
		order := "DESC"
		if strings.EqualFold(query.SortOrder, "asc") {
			order = "ASC"
		}
		q = q.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.PerPage > 0 {
		q = q.Limit(query.PerPage).Offset(query.Offset())
	}

	var postModels []model.PostModel
	if err := q.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	// Hard delete; likes and hashtag references go with the row. Remote
	// media assets are intentionally left in place.
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.PostModel{ID: id}).Error
}
