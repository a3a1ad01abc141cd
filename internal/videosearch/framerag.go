package videosearch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"videoinsight/internal/vectorstore"
)

// Embedder turns texts into fixed-length vectors, preserving order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Captioner describes a single frame image.
type Captioner interface {
	Describe(ctx context.Context, imagePath string) (string, error)
}

// FrameRAG is the visual fallback pipeline: download the video, sample
// frames, describe and embed them, then run a filtered similarity search
// for the query. Frames live in their own vector collection, separate from
// transcript chunks.
type FrameRAG struct {
	extractor *FrameExtractor
	captioner Captioner
	embedder  Embedder
	store     vectorstore.Store
	log       *logrus.Logger

	fps       int
	maxFrames int
	topK      int
}

// NewFrameRAG wires the frame pipeline.
func NewFrameRAG(
	extractor *FrameExtractor,
	captioner Captioner,
	embedder Embedder,
	store vectorstore.Store,
	log *logrus.Logger,
	fps, maxFrames, topK int,
) *FrameRAG {
	if fps <= 0 {
		fps = 1
	}
	if maxFrames <= 0 {
		maxFrames = 10
	}
	if topK <= 0 {
		topK = 5
	}
	return &FrameRAG{
		extractor: extractor,
		captioner: captioner,
		embedder:  embedder,
		store:     store,
		log:       log,
		fps:       fps,
		maxFrames: maxFrames,
		topK:      topK,
	}
}

// Search runs the full frame pipeline for one query.
func (f *FrameRAG) Search(ctx context.Context, videoURL, videoID, query string) ([]Segment, error) {
	videoPath, err := f.extractor.Download(ctx, videoURL, videoID)
	if err != nil {
		return nil, err
	}

	frames, err := f.extractor.ExtractFrames(ctx, videoPath, videoID, f.fps)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames extracted from video %s", videoID)
	}
	if len(frames) > f.maxFrames {
		frames = frames[:f.maxFrames]
	}

	captions := make([]string, len(frames))
	for i, frame := range frames {
		caption, err := f.captioner.Describe(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("frame description failed: %w", err)
		}
		captions[i] = caption
	}

	embeddings, err := f.embedder.EmbedTexts(ctx, captions)
	if err != nil {
		return nil, fmt.Errorf("frame embedding failed: %w", err)
	}

	records := make([]vectorstore.Record, len(frames))
	for i := range frames {
		// Frame i was sampled at i/fps seconds into the video.
		timestamp := float64(i) / float64(f.fps)
		records[i] = vectorstore.Record{
			ID:     fmt.Sprintf("%s-frame-%d", videoID, i),
			Values: embeddings[i],
			Metadata: vectorstore.Metadata{
				Text:    captions[i],
				Start:   timestamp,
				End:     timestamp + 1/float64(f.fps),
				VideoID: videoID,
			},
		}
	}
	if err := f.store.Upsert(ctx, records); err != nil {
		return nil, fmt.Errorf("frame upsert failed: %w", err)
	}
	f.log.WithFields(logrus.Fields{"video_id": videoID, "frames": len(records)}).
		Info("indexed video frames")

	queryVecs, err := f.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	matches, err := f.store.Query(ctx, videoID, queryVecs[0], f.topK)
	if err != nil {
		return nil, fmt.Errorf("frame query failed: %w", err)
	}

	segments := make([]Segment, len(matches))
	for i, m := range matches {
		segments[i] = Segment{
			StartTime:   m.Start,
			EndTime:     m.End,
			Description: m.Text,
		}
	}
	return segments, nil
}
