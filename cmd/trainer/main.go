// The trainer seeds the three qdrant knowledge collections with the
// static financial corpus. Run it once before starting the server; it
// is not part of the request-serving path.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"sqlgate/internal/adapter/client"
	"sqlgate/internal/adapter/store"
	"sqlgate/internal/config"
	"sqlgate/internal/domain/repository"
	"sqlgate/internal/knowledge"
)

func main() {
	_ = godotenv.Load(".env")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	embedder, err := buildEmbedder(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init embedding backend")
	}

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

	if err := knowledge.Seed(ctx, vectorStore, knowledge.Financial(), log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Msg("training complete")
}

func buildEmbedder(ctx context.Context, cfg config.Config) (repository.Embedder, error) {
	if cfg.LLMProvider == "gemini" {
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			Project:  cfg.GoogleProject,
			Location: cfg.GoogleLocation,
			Backend:  genai.BackendVertexAI,
		})
		if err != nil {
			return nil, err
		}
		return client.NewGeminiEmbedder(genaiClient, cfg.GeminiEmbedModel), nil
	}

	oai := client.NewOpenAIAPIClient(client.OpenAIConfig{
		APIKey:     cfg.OpenAIAPIKey,
		Endpoint:   cfg.AzureEndpoint,
		APIVersion: cfg.AzureAPIVersion,
		Model:      cfg.OpenAIModel,
	})
	return client.NewOpenAIEmbedder(oai, cfg.EmbeddingModel), nil
}
