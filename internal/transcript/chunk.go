package transcript

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the number of consecutive cues merged into one
// retrieval chunk.
const DefaultChunkSize = 4

// ChunkCues partitions cues into contiguous groups of chunkSize and renders
// each group as one timestamp-annotated chunk. A transcript shorter than the
// chunk size is chunked per-cue instead, so a short video still yields more
// than one retrieval unit. The last group may be smaller than chunkSize.
func ChunkCues(cues []Cue, chunkSize int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if len(cues) > 0 && len(cues) < chunkSize {
		chunkSize = 1
	}

	var chunks []Chunk
	for i := 0; i < len(cues); i += chunkSize {
		end := i + chunkSize
		if end > len(cues) {
			end = len(cues)
		}
		group := cues[i:end]

		parts := make([]string, len(group))
		for j, cue := range group {
			parts[j] = fmt.Sprintf("[%.2fs] %s", cue.Start, cue.Text)
		}

		chunks = append(chunks, Chunk{
			Text:  strings.Join(parts, " "),
			Start: group[0].Start,
			End:   group[len(group)-1].Start,
		})
	}

	return chunks
}
