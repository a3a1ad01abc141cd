package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"videoinsight/internal/api"
	"videoinsight/internal/api/handlers"
	"videoinsight/internal/cache"
	"videoinsight/internal/config"
	"videoinsight/internal/embeddings"
	"videoinsight/internal/generation"
	"videoinsight/internal/rag"
	"videoinsight/internal/storage/db"
	"videoinsight/internal/transcript"
	"videoinsight/internal/vectorstore"
	"videoinsight/internal/videosearch"
)

const (
	chunkTable = "video_chunks"
	frameTable = "video_frames"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithField("error", err.Error()).Debug("no .env file loaded")
	}

	cfg := config.Load()
	log := config.NewLogger()

	if cfg.GenerationAPIKey == "" {
		log.Fatal("GOOGLE_AI_API_KEY environment variable must be set")
	}

	ctx := context.Background()

	// Vector storage. Without DATABASE_URL the service runs on an
	// in-process store, which does not survive restarts.
	var chunkStore, frameStore vectorstore.Store
	if cfg.DatabaseURL != "" {
		database, err := db.NewConnection(db.Config{
			URL:          cfg.DatabaseURL,
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			log.WithFields(logrus.Fields{
				"error": err.Error(),
				"url":   db.MaskDatabaseURL(cfg.DatabaseURL),
			}).Fatal("failed to connect to database")
		}
		defer database.Close()

		if err := vectorstore.EnsureSchema(ctx, database, chunkTable, frameTable); err != nil {
			log.WithField("error", err.Error()).Fatal("failed to ensure vector schema")
		}
		chunkStore = vectorstore.NewPostgresStore(database, chunkTable)
		frameStore = vectorstore.NewPostgresStore(database, frameTable)
		log.WithField("url", db.MaskDatabaseURL(cfg.DatabaseURL)).Info("connected to database")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory vector store")
		chunkStore = vectorstore.NewMemoryStore()
		frameStore = vectorstore.NewMemoryStore()
	}

	// Chunk/embedding cache. Redis is preferred; fall back to an
	// in-process cache when it is unreachable.
	var chatCache cache.Cache
	if redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL); err != nil {
		log.WithField("error", err.Error()).Warn("redis unavailable, using in-memory cache")
		chatCache = cache.NewMemoryCache()
	} else {
		defer redisCache.Close()
		chatCache = redisCache
		log.Info("connected to redis")
	}

	provider := generation.NewOpenAIProvider(cfg.GenerationAPIKey, cfg.GenerationBaseURL)
	chatRouter := generation.NewRouter(provider, cfg.GenerationModels, log)
	sectionsRouter := generation.NewRouter(provider, cfg.SectionsModels, log)

	embedder := embeddings.NewClient(cfg.GenerationAPIKey, cfg.GenerationBaseURL, cfg.EmbeddingModel)

	orchestrator := rag.NewOrchestrator(chatCache, embedder, chunkStore, chatRouter, log, cfg.ChunkSize, cfg.TopK, cfg.CacheTTL)
	sectioner := rag.NewSectioner(sectionsRouter, log)
	fetcher := transcript.NewFetcher()

	captioner := videosearch.NewVisionCaptioner(cfg.GenerationAPIKey, cfg.GenerationBaseURL, cfg.VisionModel)
	frameRAG := videosearch.NewFrameRAG(videosearch.NewFrameExtractor(), captioner, embedder, frameStore, log, cfg.FramesPerSecond, cfg.MaxFrames, cfg.TopK)
	searcher := videosearch.NewSearcher(chatRouter, generation.ExtractJSONArray, frameRAG, log)

	h := &handlers.Handlers{
		Chat:      orchestrator,
		Sections:  sectioner,
		Fetcher:   fetcher,
		Search:    searcher,
		Generator: chatRouter,
		Log:       log,
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(h, cfg.ServiceAPIKey, log),
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err.Error()).Fatal("HTTP server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Error("shutdown error")
	}
}
