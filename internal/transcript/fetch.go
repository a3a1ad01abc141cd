package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Fetch error taxonomy. Handlers map these to 404; anything else is a 500.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for this video")
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([\w-]{11})`),
	regexp.MustCompile(`^([\w-]{11})$`),
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// Bare ids are accepted as-is.
func ExtractVideoID(url string) (string, error) {
	url = strings.TrimSpace(url)
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("invalid YouTube URL: %q", url)
}

// Fetcher retrieves caption tracks for a video with yt-dlp and parses them
// into deduplicated cues.
type Fetcher struct {
	// Langs are the subtitle languages requested from yt-dlp.
	Langs string
}

// NewFetcher returns a Fetcher requesting English captions.
func NewFetcher() *Fetcher {
	return &Fetcher{Langs: "en.*,en"}
}

// Fetch downloads captions for videoID and returns the cleaned cue list.
// Manually authored subtitles are preferred; auto-generated captions are the
// fallback strategy.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) ([]Cue, error) {
	dir, err := os.MkdirTemp("", "captions_"+videoID+"_")
	if err != nil {
		return nil, fmt.Errorf("error creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	strategies := []string{"--write-subs", "--write-auto-subs"}

	var lastStderr string
	for _, strategy := range strategies {
		vttPath, stderr, err := f.download(ctx, videoID, dir, strategy)
		if err != nil {
			return nil, err
		}
		lastStderr = stderr
		if vttPath == "" {
			continue
		}

		content, err := os.ReadFile(vttPath)
		if err != nil {
			return nil, fmt.Errorf("error reading captions file: %w", err)
		}

		cues, err := ParseVTT(string(content))
		if err != nil {
			return nil, fmt.Errorf("error parsing captions: %w", err)
		}
		if len(cues) == 0 {
			continue
		}
		return Deduplicate(cues), nil
	}

	if strings.Contains(strings.ToLower(lastStderr), "disabled") {
		return nil, ErrTranscriptsDisabled
	}
	return nil, ErrNoTranscript
}

// download runs yt-dlp with one subtitle strategy and returns the path of
// the produced .vtt file, if any.
func (f *Fetcher) download(ctx context.Context, videoID, dir, strategy string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--skip-download",
		strategy,
		"--sub-langs", f.Langs,
		"--sub-format", "vtt",
		"-o", filepath.Join(dir, "captions"),
		"https://www.youtube.com/watch?v="+videoID)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// yt-dlp exits non-zero for missing tracks too; only treat it as
		// fatal when the context was cancelled or the binary is absent.
		if ctx.Err() != nil {
			return "", stderr.String(), ctx.Err()
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", stderr.String(), fmt.Errorf("error running yt-dlp: %w", err)
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return "", stderr.String(), fmt.Errorf("error locating captions file: %w", err)
	}
	if len(matches) == 0 {
		return "", stderr.String(), nil
	}
	return matches[0], stderr.String(), nil
}
