package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"videoinsight/internal/generation"
	"videoinsight/internal/rag"
	"videoinsight/internal/transcript"
)

type sectionsRequest struct {
	Transcript []transcript.Cue `json:"transcript" validate:"required,min=1"`
}

type sectionsResponse struct {
	Sections []rag.Section `json:"sections"`
}

// SectionsHandler asks the model for a section breakdown of the transcript.
func (h *Handlers) SectionsHandler(w http.ResponseWriter, r *http.Request) {
	var req sectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Transcript is required")
		return
	}

	sections, err := h.Sections.Breakdown(r.Context(), req.Transcript)
	if err != nil {
		var parseErr *rag.ParseError
		switch {
		case errors.As(err, &parseErr):
			respondErrorDetails(w, http.StatusInternalServerError, "Failed to parse model response", parseErr.Raw)
		case errors.Is(err, generation.ErrAllModelsFailed):
			respondErrorDetails(w, http.StatusInternalServerError, "All generation models failed due to rate limiting or errors.", err.Error())
		default:
			h.Log.WithField("error", err.Error()).Error("sections request failed")
			respondErrorDetails(w, http.StatusInternalServerError, "Generation API error", err.Error())
		}
		return
	}

	if sections == nil {
		sections = []rag.Section{}
	}
	respondJSON(w, http.StatusOK, sectionsResponse{Sections: sections})
}
