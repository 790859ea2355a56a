package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/config"
	dbRedis "github.com/dealbridge/matchmaker/internal/db/redis"
	logpkg "github.com/dealbridge/matchmaker/internal/logger"
	"github.com/dealbridge/matchmaker/internal/metrics"
	contactrepo "github.com/dealbridge/matchmaker/internal/repository/contact"
	dealrepo "github.com/dealbridge/matchmaker/internal/repository/deal"
	"github.com/dealbridge/matchmaker/internal/repository/embcache"
	embeddingrepo "github.com/dealbridge/matchmaker/internal/repository/embedding"
	chiTransport "github.com/dealbridge/matchmaker/internal/transport/chi"
	openaiProvider "github.com/dealbridge/matchmaker/internal/transport/openai"
	embeddinguc "github.com/dealbridge/matchmaker/internal/usecase/embedding"
	explainuc "github.com/dealbridge/matchmaker/internal/usecase/explain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
	matchinguc "github.com/dealbridge/matchmaker/internal/usecase/matching"
	scoringuc "github.com/dealbridge/matchmaker/internal/usecase/scoring"
	"github.com/dealbridge/matchmaker/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting matchmaker API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Repositories
	embRepo := embeddingrepo.New(store, cfg.Embedding.Dimensions).
		WithHNSW(embeddingrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		})
	if err := embRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}
	dealRepo := dealrepo.New(store)
	contactRepo := contactrepo.New(store)

	// Embedder chain: OpenAI provider wrapped in the vector cache
	baseEmbedder := openaiProvider.NewEmbedder(&openaiProvider.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	embedder := embcache.New(
		baseEmbedder,
		store,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Use case services
	generateSvc := embeddinguc.New(embRepo, dealRepo, contactRepo, embedder, logger)
	matchSvc := matchinguc.New(embRepo, dealRepo, contactRepo, cfg.Matching.TopK, logger)
	scoreSvc := scoringuc.New(dealRepo, contactRepo)

	var explainSvc chiTransport.Explainer
	if cfg.Explain.Enabled {
		completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
			APIKey:  cfg.Explain.APIKey,
			BaseURL: cfg.Explain.BaseURL,
			Model:   cfg.Explain.Model,
			Logger:  logger,
		})
		explainSvc = explainuc.New(completer, dealRepo, contactRepo)
		logger.Info("Match explanations enabled", zap.String("model", cfg.Explain.Model))
	}

	healthSvc := healthuc.New(store, store, embRepo.IndexName(), baseEmbedder)

	server := chiTransport.NewServer(
		dealRepo, contactRepo, generateSvc, matchSvc, scoreSvc, explainSvc, healthSvc, logger,
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
