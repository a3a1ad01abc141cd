package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"videoinsight/internal/generation"
	"videoinsight/internal/rag"
	"videoinsight/internal/transcript"
)

type chatRequest struct {
	Question   string           `json:"question" validate:"required"`
	VideoID    string           `json:"videoId" validate:"required"`
	Transcript []transcript.Cue `json:"transcript" validate:"required,min=1"`
}

// ChatHandler streams a retrieval-grounded answer as plain text. The
// request context is passed through the pipeline, so a client disconnect
// aborts the upstream generation call.
func (h *Handlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing question, videoId, or transcript")
		return
	}

	stream, err := h.Chat.Chat(r.Context(), rag.ChatRequest{
		Question:   req.Question,
		VideoID:    req.VideoID,
		Transcript: req.Transcript,
	})
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrMissingFields), errors.Is(err, rag.ErrEmptyTranscript), errors.Is(err, rag.ErrNoContext):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, generation.ErrAllModelsFailed):
			respondErrorDetails(w, http.StatusInternalServerError, "All generation models failed due to rate limiting or errors.", err.Error())
		default:
			h.Log.WithField("error", err.Error()).Error("chat request failed")
			respondErrorDetails(w, http.StatusInternalServerError, "RAG chat error", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	flusher, _ := w.(http.Flusher)

	wrote := false
	for tok := range stream {
		if tok.Err != nil {
			h.Log.WithField("error", tok.Err.Error()).Error("generation stream aborted")
			if !wrote {
				// Nothing committed yet; a proper error response is still
				// possible.
				respondErrorDetails(w, http.StatusInternalServerError, "RAG chat error", tok.Err.Error())
			}
			return
		}
		if tok.Content == "" {
			continue
		}
		if _, err := w.Write([]byte(tok.Content)); err != nil {
			return
		}
		wrote = true
		if flusher != nil {
			flusher.Flush()
		}
	}
}
