package handlers

import (
	"encoding/json"
	"net/http"

	"videoinsight/internal/transcript"
	"videoinsight/internal/videosearch"
)

type searchRequest struct {
	VideoURL      string `json:"videoUrl" validate:"required"`
	Query         string `json:"query" validate:"required"`
	ForceImageRag bool   `json:"forceImageRag"`
}

type searchResponse struct {
	Segments []videosearch.Segment `json:"segments"`
	Source   string                `json:"source"`
}

// VideoSearchHandler finds video moments matching a natural-language query.
func (h *Handlers) VideoSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "videoUrl and query are required")
		return
	}

	videoID, err := transcript.ExtractVideoID(req.VideoURL)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	segments, source, err := h.Search.Search(r.Context(), req.VideoURL, videoID, req.Query, req.ForceImageRag)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("video search failed")
		respondErrorDetails(w, http.StatusInternalServerError, "Video search error", err.Error())
		return
	}

	if segments == nil {
		segments = []videosearch.Segment{}
	}
	respondJSON(w, http.StatusOK, searchResponse{Segments: segments, Source: source})
}
