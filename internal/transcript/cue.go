// Package transcript holds the caption data model and the pure text
// processing applied to it: WebVTT parsing, near-duplicate cue collapsing
// and chunking for embedding.
package transcript

// Cue is a single timed caption unit. Start and End are seconds from the
// beginning of the video. Cues arrive ordered by Start, but out-of-order
// input is tolerated everywhere.
type Cue struct {
	Text  string  `json:"text" validate:"required"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Chunk is a contiguous group of cues merged into one retrieval unit. Text
// carries a per-cue timestamp annotation so the model can cite moments.
// End is the start of the last cue in the group, not its end; downstream
// timestamp citations were built against that behavior.
type Chunk struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
