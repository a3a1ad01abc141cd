package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"videoinsight/internal/rag"
	"videoinsight/internal/transcript"
)

type transcriptRequest struct {
	URL     string `json:"url" validate:"required"`
	Cleanup bool   `json:"cleanup"`
}

type transcriptResponse struct {
	Transcript []transcript.Cue `json:"transcript"`
	VideoID    string           `json:"videoId"`
}

// TranscriptHandler fetches and cleans the captions for a video URL.
func (h *Handlers) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	videoID, err := transcript.ExtractVideoID(req.URL)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	cues, err := h.Fetcher.Fetch(r.Context(), videoID)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrTranscriptsDisabled):
			respondError(w, http.StatusNotFound, "Transcript is disabled for this video")
		case errors.Is(err, transcript.ErrNoTranscript):
			respondError(w, http.StatusNotFound, "No transcript available for this video")
		default:
			h.Log.WithField("error", err.Error()).Error("transcript fetch failed")
			respondErrorDetails(w, http.StatusInternalServerError, "Failed to fetch transcript", err.Error())
		}
		return
	}

	if req.Cleanup {
		cues = rag.CleanTranscript(r.Context(), h.Generator, h.Log, cues)
	}

	respondJSON(w, http.StatusOK, transcriptResponse{Transcript: cues, VideoID: videoID})
}
