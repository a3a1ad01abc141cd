// Package api assembles the HTTP surface of the service.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"videoinsight/internal/api/handlers"
	"videoinsight/internal/api/middleware"
)

// NewRouter builds the route table. The API routes require an X-API-Key
// header when apiKey is set; /health is always public.
func NewRouter(h *handlers.Handlers, apiKey string, log *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Public routes
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	// Protected routes
	api := r.PathPrefix("/api").Subrouter()
	if apiKey != "" {
		api.Use(middleware.Auth(apiKey))
	}

	api.HandleFunc("/chat", h.ChatHandler).Methods(http.MethodPost)
	api.HandleFunc("/sections", h.SectionsHandler).Methods(http.MethodPost)
	api.HandleFunc("/transcript", h.TranscriptHandler).Methods(http.MethodPost)
	api.HandleFunc("/video-search", h.VideoSearchHandler).Methods(http.MethodPost)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
