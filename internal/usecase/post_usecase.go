package usecase

import (
	"context"
	"fmt"

	"clipstream/internal/entity"
	"clipstream/internal/media"
	"clipstream/internal/repo/persistent"
	"clipstream/internal/repo/rpc"
	"clipstream/pkg/logger"
	"clipstream/pkg/queue"
)

type CreatePostInput struct {
	AuthorID  string
	Content   string
	MusicID   string
	IsPrivate bool
}

type ListPostsQuery struct {
	Filter    map[string]interface{}
	Q         string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// MediaPipeline runs the derive or mix flow for an uploaded video.
type MediaPipeline interface {
	Process(ctx context.Context, input media.ProcessInput) (*media.Result, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, requesterID string, input CreatePostInput, upload media.Upload) (*entity.PostView, error)
	ListPosts(ctx context.Context, query ListPostsQuery) (*entity.PostList, error)
	GetPost(ctx context.Context, id string) (*entity.PostView, error)
	DeletePost(ctx context.Context, requesterID, id string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	hashtags    *HashtagResolver
	pipeline    MediaPipeline
	users       rpc.UserDirectory
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	hashtags *HashtagResolver,
	pipeline MediaPipeline,
	users rpc.UserDirectory,
	queueClient *queue.Client,
	log *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		hashtags:    hashtags,
		pipeline:    pipeline,
		users:       users,
		queueClient: queueClient,
		logger:      log,
	}
}

type hashtagResult struct {
	tags []entity.Hashtag
	err  error
}

func (uc *postUseCase) CreatePost(ctx context.Context, requesterID string, input CreatePostInput, upload media.Upload) (*entity.PostView, error) {
	if requesterID != input.AuthorID {
		return nil, fmt.Errorf("%w: cannot create a post for another user", entity.ErrForbidden)
	}

	author, err := uc.users.GetUser(ctx, input.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	// Hashtag resolution has no dependency on the media pipeline, run it
	// alongside.
	hashtagCh := make(chan hashtagResult, 1)
	go func() {
		tags, err := uc.hashtags.Resolve(ctx, input.Content)
		hashtagCh <- hashtagResult{tags: tags, err: err}
	}()

	result, pipelineErr := uc.pipeline.Process(ctx, media.ProcessInput{
		Upload:    upload,
		MusicID:   input.MusicID,
		MusicName: fmt.Sprintf("song-%s", author.Username),
	})

	resolved := <-hashtagCh

	if pipelineErr != nil {
		uc.logger.Error("Media pipeline failed for user %s: %v", requesterID, pipelineErr)
		return nil, pipelineErr
	}
	if resolved.err != nil {
		return nil, fmt.Errorf("failed to resolve hashtags: %w", resolved.err)
	}

	post := &entity.Post{
		AuthorID:  input.AuthorID,
		Content:   input.Content,
		Media:     result.MediaURL,
		MusicID:   result.Music.ID,
		Music:     result.Music,
		IsPrivate: input.IsPrivate,
		Hashtags:  resolved.tags,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.Music = result.Music

	uc.logger.Info("Post %s created by user %s", post.ID, requesterID)

	if uc.queueClient != nil {
		go uc.publishNotification(post)
	}

	return &entity.PostView{Post: *post, Author: author}, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, query ListPostsQuery) (*entity.PostList, error) {
	posts, total, err := uc.postRepo.List(ctx, persistent.ListQuery{
		Filter:    query.Filter,
		Q:         query.Q,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		PerPage:   query.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	items := make([]entity.PostView, len(posts))
	for i, post := range posts {
		author, err := uc.users.GetUser(ctx, post.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author for post %s: %w", post.ID, err)
		}
		items[i] = entity.PostView{Post: *post, Author: author}
	}

	return &entity.PostList{Items: items, TotalCount: total}, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, id string) (*entity.PostView, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := uc.users.GetUser(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author for post %s: %w", post.ID, err)
	}

	return &entity.PostView{Post: *post, Author: author}, nil
}

// DeletePost is a hard delete. Media assets in remote storage are left in
// place.
func (uc *postUseCase) DeletePost(ctx context.Context, requesterID, id string) error {
	if _, err := uc.postRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.logger.Info("Post %s deleted by user %s", id, requesterID)
	return nil
}

func (uc *postUseCase) publishNotification(post *entity.Post) {
	task := map[string]interface{}{
		"type":      "new_post",
		"post_id":   post.ID,
		"author_id": post.AuthorID,
	}

	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish notification task: %v (post_id=%s)", err, post.ID)
	}
}
