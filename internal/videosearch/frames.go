package videosearch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// FrameExtractor shells out to yt-dlp and ffmpeg to turn a video URL into
// still frames on disk.
type FrameExtractor struct {
	// WorkDir holds downloaded videos and extracted frames between
	// requests so repeated searches over one video skip the download.
	WorkDir string
}

// NewFrameExtractor returns an extractor working under the system temp dir.
func NewFrameExtractor() *FrameExtractor {
	return &FrameExtractor{WorkDir: os.TempDir()}
}

// Download fetches the video as mp4 unless it is already present, and
// returns its path.
func (e *FrameExtractor) Download(ctx context.Context, videoURL, videoID string) (string, error) {
	videoPath := filepath.Join(e.WorkDir, videoID+".mp4")
	if _, err := os.Stat(videoPath); err == nil {
		return videoPath, nil
	}

	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "mp4",
		"-o", videoPath,
		videoURL)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error downloading video: %w\nstderr: %s", err, stderr.String())
	}
	return videoPath, nil
}

// ExtractFrames samples the video at fps frames per second unless frames
// are already present, and returns the sorted frame paths.
func (e *FrameExtractor) ExtractFrames(ctx context.Context, videoPath, videoID string, fps int) ([]string, error) {
	framesDir := filepath.Join(e.WorkDir, "frames_"+videoID)

	existing, _ := filepath.Glob(filepath.Join(framesDir, "*.jpg"))
	if len(existing) > 0 {
		sort.Strings(existing)
		return existing, nil
	}

	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating frames dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%d", fps),
		filepath.Join(framesDir, "frame-%04d.jpg"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error extracting frames: %w\nstderr: %s", err, stderr.String())
	}

	frames, err := filepath.Glob(filepath.Join(framesDir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("error listing frames: %w", err)
	}
	sort.Strings(frames)
	return frames, nil
}
