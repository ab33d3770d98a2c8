package usecase

import (
	"context"
	"testing"

	"clipstream/internal/entity"
	"clipstream/internal/media"
	"clipstream/internal/repo/persistent"
	"clipstream/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, query persistent.ListQuery) ([]*entity.Post, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Process(ctx context.Context, input media.ProcessInput) (*media.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

var _ MediaPipeline = (*MockPipeline)(nil)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUser(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type useCaseMocks struct {
	postRepo    *MockPostRepository
	hashtagRepo *MockHashtagRepository
	pipeline    *MockPipeline
	users       *MockUserDirectory
}

func newTestUseCase() (PostUseCase, *useCaseMocks) {
	m := &useCaseMocks{
		postRepo:    new(MockPostRepository),
		hashtagRepo: new(MockHashtagRepository),
		pipeline:    new(MockPipeline),
		users:       new(MockUserDirectory),
	}
	uc := NewPostUseCase(
		m.postRepo,
		NewHashtagResolver(m.hashtagRepo),
		m.pipeline,
		m.users,
		nil,
		logger.New(),
	)
	return uc, m
}

func TestCreatePost_DeriveFlow(t *testing.T) {
	uc, m := newTestUseCase()

	author := &entity.User{ID: "user-1", Username: "alice"}
	sunset := &entity.Hashtag{ID: uuid.New().String(), Content: "#sunset"}
	newMusic := &entity.Music{ID: uuid.New().String(), Name: "song-alice", Song: "https://cdn/audio.mp3"}

	m.users.On("GetUser", mock.Anything, "user-1").Return(author, nil)
	m.hashtagRepo.On("GetOrCreate", mock.Anything, "#sunset").Return(sunset, nil)
	m.pipeline.On("Process", mock.Anything, mock.MatchedBy(func(in media.ProcessInput) bool {
		return in.MusicID == "" && in.MusicName == "song-alice"
	})).Return(&media.Result{Music: newMusic, MediaURL: "https://cdn/video.mp4"}, nil)
	m.postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	view, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-1",
		Content:  "evening #sunset",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn/video.mp4", view.Media)
	assert.Equal(t, newMusic.ID, view.MusicID)
	assert.Equal(t, newMusic, view.Music)
	assert.Equal(t, author, view.Author)
	assert.Len(t, view.Hashtags, 1)
	assert.Equal(t, "#sunset", view.Hashtags[0].Content)
	m.postRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreatePost_MixFlow_ReusesMusic(t *testing.T) {
	uc, m := newTestUseCase()

	author := &entity.User{ID: "user-1", Username: "alice"}
	existing := &entity.Music{ID: "music-7", Name: "track", Song: "https://cdn/track.mp3"}

	m.users.On("GetUser", mock.Anything, "user-1").Return(author, nil)
	m.pipeline.On("Process", mock.Anything, mock.MatchedBy(func(in media.ProcessInput) bool {
		return in.MusicID == "music-7"
	})).Return(&media.Result{Music: existing, MediaURL: "https://cdn/mixed.mp4"}, nil)
	m.postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	view, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-1",
		Content:  "no tags here",
		MusicID:  "music-7",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	assert.NoError(t, err)
	assert.Equal(t, "music-7", view.MusicID)
	assert.Equal(t, existing, view.Music)
	m.hashtagRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
}

func TestCreatePost_ForbiddenForOtherAuthor(t *testing.T) {
	uc, m := newTestUseCase()

	_, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-2",
		Content:  "caption",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	assert.ErrorIs(t, err, entity.ErrForbidden)
	m.users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	m.pipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	m.postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_AuthorNotFound(t *testing.T) {
	uc, m := newTestUseCase()

	m.users.On("GetUser", mock.Anything, "user-1").Return(nil, entity.ErrNotFound)

	_, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-1",
		Content:  "caption",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	assert.ErrorIs(t, err, entity.ErrNotFound)
	m.pipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	m.postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_MusicNotFound(t *testing.T) {
	uc, m := newTestUseCase()

	author := &entity.User{ID: "user-1", Username: "alice"}
	m.users.On("GetUser", mock.Anything, "user-1").Return(author, nil)
	m.pipeline.On("Process", mock.Anything, mock.Anything).Return(nil, entity.ErrNotFound)

	_, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-1",
		Content:  "caption",
		MusicID:  "missing",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	assert.ErrorIs(t, err, entity.ErrNotFound)
	m.postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_PipelineFailure_NoPostPersisted(t *testing.T) {
	uc, m := newTestUseCase()

	author := &entity.User{ID: "user-1", Username: "alice"}
	m.users.On("GetUser", mock.Anything, "user-1").Return(author, nil)
	m.pipeline.On("Process", mock.Anything, mock.Anything).
		Return(nil, entity.NewMediaError("upload-video", assert.AnError))

	_, err := uc.CreatePost(context.Background(), "user-1", CreatePostInput{
		AuthorID: "user-1",
		Content:  "caption",
	}, media.Upload{Path: "/tmp/in.mp4", Name: "in.mp4"})

	var mediaErr *entity.MediaError
	assert.ErrorAs(t, err, &mediaErr)
	assert.Equal(t, "upload-video", mediaErr.Step)
	m.postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListPosts_EnrichesEachRow(t *testing.T) {
	uc, m := newTestUseCase()

	posts := []*entity.Post{
		{ID: "p1", AuthorID: "user-1"},
		{ID: "p2", AuthorID: "user-2"},
	}
	m.postRepo.On("List", mock.Anything, mock.MatchedBy(func(q persistent.ListQuery) bool {
		return q.Page == 2 && q.PerPage == 10 && q.Offset() == 10
	})).Return(posts, int64(25), nil)
	m.users.On("GetUser", mock.Anything, "user-1").Return(&entity.User{ID: "user-1", Username: "alice"}, nil)
	m.users.On("GetUser", mock.Anything, "user-2").Return(&entity.User{ID: "user-2", Username: "bob"}, nil)

	list, err := uc.ListPosts(context.Background(), ListPostsQuery{Page: 2, PerPage: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), list.TotalCount)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, "alice", list.Items[0].Author.Username)
	assert.Equal(t, "bob", list.Items[1].Author.Username)
}

func TestListPosts_EnrichmentFailure(t *testing.T) {
	uc, m := newTestUseCase()

	posts := []*entity.Post{{ID: "p1", AuthorID: "user-1"}}
	m.postRepo.On("List", mock.Anything, mock.Anything).Return(posts, int64(1), nil)
	m.users.On("GetUser", mock.Anything, "user-1").Return(nil, assert.AnError)

	_, err := uc.ListPosts(context.Background(), ListPostsQuery{Page: 1, PerPage: 10})

	assert.Error(t, err)
}

func TestGetPost_NotFound(t *testing.T) {
	uc, m := newTestUseCase()

	m.postRepo.On("GetByID", mock.Anything, "missing").Return(nil, entity.ErrNotFound)

	_, err := uc.GetPost(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetPost_Enriched(t *testing.T) {
	uc, m := newTestUseCase()

	post := &entity.Post{ID: "p1", AuthorID: "user-1"}
	m.postRepo.On("GetByID", mock.Anything, "p1").Return(post, nil)
	m.users.On("GetUser", mock.Anything, "user-1").Return(&entity.User{ID: "user-1", Username: "alice"}, nil)

	view, err := uc.GetPost(context.Background(), "p1")

	assert.NoError(t, err)
	assert.Equal(t, "p1", view.ID)
	assert.Equal(t, "alice", view.Author.Username)
}

func TestDeletePost_NotFound(t *testing.T) {
	uc, m := newTestUseCase()

	m.postRepo.On("GetByID", mock.Anything, "missing").Return(nil, entity.ErrNotFound)

	err := uc.DeletePost(context.Background(), "user-1", "missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
	m.postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePost_Existing(t *testing.T) {
	uc, m := newTestUseCase()

	post := &entity.Post{ID: "p1", AuthorID: "user-1"}
	m.postRepo.On("GetByID", mock.Anything, "p1").Return(post, nil)
	m.postRepo.On("Delete", mock.Anything, "p1").Return(nil)

	err := uc.DeletePost(context.Background(), "user-1", "p1")

	assert.NoError(t, err)
	m.postRepo.AssertCalled(t, "Delete", mock.Anything, "p1")
}
