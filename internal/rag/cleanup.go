package rag

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"videoinsight/internal/generation"
	"videoinsight/internal/transcript"
)

// CleanTranscript asks the generation model to fix punctuation and casing of
// cue texts without changing wording or timing. Cleanup is best-effort
// polish: any model or parse failure returns the input unchanged.
func CleanTranscript(ctx context.Context, generator Generator, log *logrus.Logger, cues []transcript.Cue) []transcript.Cue {
	if len(cues) == 0 {
		return cues
	}

	payload, err := json.Marshal(cues)
	if err != nil {
		return cues
	}

	prompt := "The following JSON array contains caption cues from a video transcript. " +
		"Fix punctuation, capitalization and obvious transcription typos in each \"text\" field. " +
		"Do not merge, split, reorder or drop cues, and do not change \"start\" or \"end\".\n\n" +
		string(payload) + "\n\n" +
		"Return only the corrected JSON array, same shape and length."

	text, err := generator.Complete(ctx, prompt)
	if err != nil {
		log.WithField("error", err.Error()).Warn("transcript cleanup failed, returning raw cues")
		return cues
	}

	raw, err := generation.ExtractJSONArray(text)
	if err != nil {
		log.WithField("error", err.Error()).Warn("transcript cleanup response unparseable, returning raw cues")
		return cues
	}

	var cleaned []transcript.Cue
	if err := json.Unmarshal(raw, &cleaned); err != nil || len(cleaned) != len(cues) {
		log.Warn("transcript cleanup returned mismatched cues, returning raw cues")
		return cues
	}
	return cleaned
}
