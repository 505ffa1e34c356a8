package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"realestate-agent/internal/config"
	"realestate-agent/internal/handler"
	"realestate-agent/internal/metrics"
	"realestate-agent/internal/repository"
	"realestate-agent/internal/seed"
	"realestate-agent/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Logging.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	logger.Info("real estate agent starting",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	properties, conversations, closeStore, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	var generators []service.Generator
	if cfg.Ollama.Enabled {
		generators = append(generators, service.NewOllamaGenerator(cfg.Ollama))
		logger.Info("local generator enabled", "command", cfg.Ollama.Command, "model", cfg.Ollama.Model)
	}
	if cfg.OpenRouter.Enabled {
		client := service.NewOpenAIClient(&cfg.OpenRouter, logger)
		generators = append(generators, service.NewChatGenerator(client))
		logger.Info("chat generator enabled", "api_base", cfg.OpenRouter.APIBase, "model", cfg.OpenRouter.ChatModel)
	} else {
		logger.Warn("OpenRouter is disabled, set OPENROUTER_API_KEY to enable the hosted chat tier")
	}

	composer := service.NewComposer(logger, m, generators...)
	simulator := service.NewOwnerContactSimulator(cfg.Contact, service.WithContactMetrics(m))
	agent := service.NewAgentService(properties, conversations, composer, simulator, cfg.Search, logger, m,
		service.WithComposeTimeout(cfg.Server.ComposeTimeout))

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = cfg.Server.AllowedMethods
	corsConfig.AllowHeaders = cfg.Server.AllowedHeaders
	router.Use(cors.New(corsConfig))

	handler.Routes{
		Agent:         handler.NewAgentHandler(agent, logger),
		Properties:    handler.NewPropertyHandler(agent, logger),
		Conversations: handler.NewConversationHandler(agent, logger),
		Embeddings:    handler.NewEmbeddingHandler(agent, cfg.Embedding.Dimensions),
		Health: handler.NewHealthHandler(agent, handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		}, logger),
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}.Register(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr, "api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStores returns the catalog and conversation stores for the configured
// driver along with a function releasing them.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.PropertyStore, repository.ConversationStore, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := repository.NewMemoryStore()
		if _, err := seed.Seed(ctx, store, seed.Default(), false, logger); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		logger.Warn("using in-memory storage, data is lost on restart")
		return store, store, func() {}, nil
	}

	db, err := repository.Connect(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	logger.Info("connected to PostgreSQL database", "database", cfg.PostgreSQL.Database)

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return repository.NewPostgresRepository(db), repository.NewConversationRepository(db), closeDB, nil
}
