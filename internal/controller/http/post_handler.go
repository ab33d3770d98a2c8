package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"clipstream/internal/entity"
	"clipstream/internal/media"
	"clipstream/internal/usecase"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	uploadDir   string
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, uploadDir string, log *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		uploadDir:   uploadDir,
		logger:      log,
	}
}

type CreatePostRequest struct {
	AuthorID  string `form:"author_id" binding:"required"`
	Content   string `form:"content" binding:"required"`
	MusicID   string `form:"music_id"`
	IsPrivate bool   `form:"is_private"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a new post from an uploaded video. Without music_id a new audio track is derived from the video; with music_id the referenced track replaces the video's audio.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        author_id formData string true "Author ID (must match the authenticated user)"
// @Param        content formData string true "Caption text, hashtags included"
// @Param        music_id formData string false "Existing music track to mix in"
// @Param        is_private formData boolean false "Private flag"
// @Param        media formData file true "Video file (mp4/mov)"
// @Success      201  {object}  entity.PostView
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}

	videoDir := filepath.Join(h.uploadDir, "videos")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		h.logger.Error("Failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	localPath := filepath.Join(videoDir, name)
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		h.logger.Error("Failed to save uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	view, err := h.postUseCase.CreatePost(
		c.Request.Context(),
		userID,
		usecase.CreatePostInput{
			AuthorID:  req.AuthorID,
			Content:   req.Content,
			MusicID:   req.MusicID,
			IsPrivate: req.IsPrivate,
		},
		media.Upload{Path: localPath, Name: name},
	)
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// ListPosts godoc
// @Summary      List posts
// @Description  Filtered, paginated post listing. Every row is enriched with its author profile.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page (1-indexed)" default(1)
// @Param        per_page query int false "Page size" default(10)
// @Param        sort_by query string false "Sort column"
// @Param        sort_order query string false "ASC or DESC" default(DESC)
// @Param        q query string false "Substring match against content"
// @Param        author_id query string false "Filter by author"
// @Param        is_private query boolean false "Filter by privacy flag"
// @Success      200  {object}  entity.PostList
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	query := buildListQuery(c)

	list, err := h.postUseCase.ListPosts(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.PostView
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	view, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeletePost godoc
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// buildListQuery splits the request query string into pagination/sorting
// parameters and a column filter.
func buildListQuery(c *gin.Context) usecase.ListPostsQuery {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}

	filter := make(map[string]interface{})
	if authorID := c.Query("author_id"); authorID != "" {
		filter["author_id"] = authorID
	}
	if isPrivate := c.Query("is_private"); isPrivate != "" {
		filter["is_private"] = isPrivate == "true"
	}

	return usecase.ListPostsQuery{
		Filter:    filter,
		Q:         c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PerPage:   perPage,
	}
}

func statusFromError(err error) int {
	var mediaErr *entity.MediaError
	switch {
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &mediaErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
