package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcoder produces derived media assets. Implementations are opaque to
// the pipeline.
type Transcoder interface {
	// ExtractAudio pulls the audio track out of a video file and returns
	// the path of the resulting mp3.
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
	// MuxVideoWithAudio replaces a video's audio stream with the given
	// track. The video stream is copied unmodified and the output is
	// truncated to the shorter input. The audio input may be a URL.
	MuxVideoWithAudio(ctx context.Context, videoPath, audioInput string) (string, error)
}

type FFmpeg struct {
	binary  string
	workDir string
}

func NewFFmpeg(binary, workDir string) *FFmpeg {
	return &FFmpeg{binary: binary, workDir: workDir}
}

func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	outDir := filepath.Join(f.workDir, "audios")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio dir: %w", err)
	}

	base := filepath.Base(videoPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".mp3"
	dest := filepath.Join(outDir, name)

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-c:a", "libmp3lame",
		dest,
	}
	cmd := exec.CommandContext(ctx, f.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return dest, nil
}

func (f *FFmpeg) MuxVideoWithAudio(ctx context.Context, videoPath, audioInput string) (string, error) {
	outDir := filepath.Join(f.workDir, "videos")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create video dir: %w", err)
	}

	dest := filepath.Join(outDir, "copy-"+filepath.Base(videoPath))

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioInput,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-shortest",
		dest,
	}
	cmd := exec.CommandContext(ctx, f.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg mux: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return dest, nil
}
