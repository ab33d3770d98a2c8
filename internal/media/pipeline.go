package media

import (
	"context"
	"os"

	"clipstream/internal/entity"
	"clipstream/pkg/logger"
	"clipstream/pkg/s3"
)

// Upload is the already-received local file the controller saved to disk.
type Upload struct {
	Path string
	Name string
}

// ProcessInput selects the pipeline flow: an empty MusicID derives a new
// track from the video, a set MusicID mixes the referenced track in.
type ProcessInput struct {
	Upload    Upload
	MusicID   string
	MusicName string
}

// Result carries the durable media URL and the music row backing the post.
type Result struct {
	Music    *entity.Music
	MediaURL string
}

// ObjectStorage uploads a local file and returns its durable URL.
type ObjectStorage interface {
	UploadFile(localPath string, kind s3.Kind) (string, error)
}

// MusicStore is the subset of the music repository the pipeline needs.
type MusicStore interface {
	Create(ctx context.Context, music *entity.Music) error
	GetByID(ctx context.Context, id string) (*entity.Music, error)
}

type Pipeline struct {
	transcoder Transcoder
	storage    ObjectStorage
	music      MusicStore
	logger     *logger.Logger
}

func NewPipeline(transcoder Transcoder, storage ObjectStorage, music MusicStore, log *logger.Logger) *Pipeline {
	return &Pipeline{
		transcoder: transcoder,
		storage:    storage,
		music:      music,
		logger:     log,
	}
}

// Process runs one of the two flows. Temp files are removed best effort
// on both success and failure; no storage or database row is left behind
// when a step fails.
func (p *Pipeline) Process(ctx context.Context, input ProcessInput) (*Result, error) {
	if input.MusicID == "" {
		return p.deriveAudio(ctx, input)
	}
	return p.mixExistingAudio(ctx, input)
}

func (p *Pipeline) deriveAudio(ctx context.Context, input ProcessInput) (*Result, error) {
	cleanup := []string{input.Upload.Path}
	defer func() { p.removeAll(cleanup) }()

	audioPath, err := p.transcoder.ExtractAudio(ctx, input.Upload.Path)
	if err != nil {
		return nil, entity.NewMediaError("extract-audio", err)
	}
	cleanup = append(cleanup, audioPath)

	videoURL, err := p.storage.UploadFile(input.Upload.Path, s3.KindVideo)
	if err != nil {
		return nil, entity.NewMediaError("upload-video", err)
	}

	audioURL, err := p.storage.UploadFile(audioPath, s3.KindAudio)
	if err != nil {
		return nil, entity.NewMediaError("upload-audio", err)
	}

	music := &entity.Music{
		Name: input.MusicName,
		Song: audioURL,
	}
	if err := p.music.Create(ctx, music); err != nil {
		return nil, entity.NewMediaError("save-music", err)
	}

	return &Result{Music: music, MediaURL: videoURL}, nil
}

func (p *Pipeline) mixExistingAudio(ctx context.Context, input ProcessInput) (*Result, error) {
	// Resolve the track before touching the filesystem or remote storage
	music, err := p.music.GetByID(ctx, input.MusicID)
	if err != nil {
		return nil, err
	}

	cleanup := []string{input.Upload.Path}
	defer func() { p.removeAll(cleanup) }()

	mergedPath, err := p.transcoder.MuxVideoWithAudio(ctx, input.Upload.Path, music.Song)
	if err != nil {
		return nil, entity.NewMediaError("mux-video", err)
	}
	cleanup = append(cleanup, mergedPath)

	mediaURL, err := p.storage.UploadFile(mergedPath, s3.KindVideo)
	if err != nil {
		return nil, entity.NewMediaError("upload-video", err)
	}

	return &Result{Music: music, MediaURL: mediaURL}, nil
}

func (p *Pipeline) removeAll(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("Failed to remove temp file %s: %v", path, err)
		}
	}
}
