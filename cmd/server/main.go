package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"sqlgate/internal/adapter/api"
	"sqlgate/internal/adapter/client"
	"sqlgate/internal/adapter/store"
	"sqlgate/internal/config"
	"sqlgate/internal/domain/repository"
	"sqlgate/internal/knowledge"
	"sqlgate/internal/usecase"
)

func main() {
	// .env is optional; the system environment wins when absent.
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := newLogger(cfg)
	ctx := context.Background()

	// Generation and embedding backends
	model, embedder, err := buildProvider(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init generation backend")
	}

	// Qdrant holds the three knowledge collections
	qClient, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.QdrantHost,
		Port: cfg.QdrantPort,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to qdrant")
	}
	defer qClient.Close()

	vectorStore := store.NewQdrantStore(qClient, embedder, store.Collections{
		Examples: cfg.ExamplesCollection,
		DDL:      cfg.DDLCollection,
		Docs:     cfg.DocsCollection,
	}, cfg.TopK)
	if err := vectorStore.InitCollections(ctx, cfg.EmbeddingDim); err != nil {
		log.Fatal().Err(err).Msg("failed to init qdrant collections")
	}

	// Optional token budget limiter
	var limiter repository.TokenLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		limiter = store.NewRedisLimiter(rdb, cfg.TokenBudget)
	}

	// Target financial database, one handle for the process lifetime
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open target database")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	executor := store.NewSQLiteExecutor(db)

	audit := store.NewExcelLog(cfg.AuditPath)

	orchestrator := usecase.NewOrchestrator(
		vectorStore,
		model,
		executor,
		audit,
		limiter,
		cfg.InitialPrompt,
		usecase.Rates{
			InputTokenRate:  cfg.InputTokenRate,
			OutputTokenRate: cfg.OutputTokenRate,
			Scale:           cfg.CostScale,
		},
		cfg.GenTimeout,
		cfg.ExecTimeout,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName: "sqlgate",
	})
	handler := api.NewQueryHandler(orchestrator, knowledge.Financial())
	api.SetupRouter(app, handler)

	// Listen failures come back over the channel so the deferred
	// resource releases above still run.
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("sqlgate running")
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Block until a shutdown signal or a dead listener, then release
	// everything in order.
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		log.Error().Err(err).Msg("server stopped")
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}
	log.Info().Msg("sqlgate stopped")
}

// buildProvider wires the configured generation backend. When both
// backends are configured the other one is kept as a fallback model.
func buildProvider(ctx context.Context, cfg config.Config, log zerolog.Logger) (repository.ChatModel, repository.Embedder, error) {
	var primary, fallback repository.ChatModel
	var embedder repository.Embedder

	switch cfg.LLMProvider {
	case "gemini":
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			Project:  cfg.GoogleProject,
			Location: cfg.GoogleLocation,
			Backend:  genai.BackendVertexAI,
		})
		if err != nil {
			return nil, nil, err
		}
		primary = client.NewGeminiChat(genaiClient, cfg.GeminiModel, cfg.MaxOutputTokens)
		embedder = client.NewGeminiEmbedder(genaiClient, cfg.GeminiEmbedModel)

	default: // openai
		oai := client.NewOpenAIAPIClient(client.OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Endpoint:   cfg.AzureEndpoint,
			APIVersion: cfg.AzureAPIVersion,
			Model:      cfg.OpenAIModel,
		})
		primary = client.NewOpenAIChat(oai, cfg.OpenAIModel, cfg.MaxOutputTokens)
		embedder = client.NewOpenAIEmbedder(oai, cfg.EmbeddingModel)

		if cfg.GoogleProject != "" {
			genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
				Project:  cfg.GoogleProject,
				Location: cfg.GoogleLocation,
				Backend:  genai.BackendVertexAI,
			})
			if err != nil {
				log.Warn().Err(err).Msg("fallback model unavailable, continuing without it")
			} else {
				fallback = client.NewGeminiChat(genaiClient, cfg.GeminiModel, cfg.MaxOutputTokens)
			}
		}
	}

	return usecase.NewResilientModel(primary, fallback, cfg.GenTimeout, log), embedder, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out zerolog.Logger
	if cfg.LogPretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		out = zerolog.New(os.Stdout)
	}
	return out.Level(level).With().Timestamp().Str("service", "sqlgate").Logger()
}
