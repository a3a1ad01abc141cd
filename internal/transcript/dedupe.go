package transcript

import "strings"

// wordOverlapThreshold is the fraction of a candidate cue's words that must
// already appear in the previously kept cue for the candidate to be dropped
// as a near-duplicate.
const wordOverlapThreshold = 0.8

// Deduplicate collapses rolling-caption artifacts from auto-generated
// subtitles. Auto captions often repeat the tail of the previous cue as the
// head of the next one, or re-emit a cue with one word appended.
//
// Each candidate is compared only against the immediately preceding kept
// cue, never a wider window, so intentional repetition spaced apart in the
// source survives. The first cue is always kept. Pure function of input
// order; the input slice is not modified.
func Deduplicate(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}

	kept := make([]Cue, 0, len(cues))
	kept = append(kept, cues[0])

	for _, cue := range cues[1:] {
		last := kept[len(kept)-1]
		if isNearDuplicate(cue.Text, last.Text) {
			continue
		}
		kept = append(kept, cue)
	}

	return kept
}

func isNearDuplicate(candidate, lastKept string) bool {
	a := strings.ToLower(strings.TrimSpace(candidate))
	b := strings.ToLower(strings.TrimSpace(lastKept))
	if a == "" || b == "" {
		return a == b
	}

	// Rolling-caption artifact: one text contains the other whole.
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	return wordOverlap(a, b) > wordOverlapThreshold
}

// wordOverlap returns the fraction of words in candidate that also occur in
// lastKept.
func wordOverlap(candidate, lastKept string) float64 {
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	for _, w := range strings.Fields(lastKept) {
		seen[w] = true
	}

	matched := 0
	for _, w := range words {
		if seen[w] {
			matched++
		}
	}

	return float64(matched) / float64(len(words))
}
