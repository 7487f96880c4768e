// Package config centralizes application settings loaded from
// environment variables, with defaults and startup validation.
// Secrets (API keys) come only from the environment.
package config

import (
	"errors"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sqlgate.
type Config struct {
	// Server
	Port string `env:"PORT" env-default:"8000"`
	Env  string `env:"ENV" env-default:"local"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogPretty bool   `env:"LOG_PRETTY" env-default:"false"`

	// Vector store
	QdrantHost         string `env:"QDRANT_HOST" env-default:"localhost"`
	QdrantPort         int    `env:"QDRANT_PORT" env-default:"6334"`
	ExamplesCollection string `env:"QDRANT_EXAMPLES_COLLECTION" env-default:"sqlgate_examples"`
	DDLCollection      string `env:"QDRANT_DDL_COLLECTION" env-default:"sqlgate_ddl"`
	DocsCollection     string `env:"QDRANT_DOCS_COLLECTION" env-default:"sqlgate_docs"`
	TopK               int    `env:"RETRIEVAL_TOP_K" env-default:"5"`

	// Generation backend: "openai" (Azure or plain) or "gemini".
	LLMProvider string `env:"LLM_PROVIDER" env-default:"openai"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AzureEndpoint    string `env:"AZURE_OPENAI_ENDPOINT"`
	AzureAPIVersion  string `env:"AZURE_OPENAI_API_VERSION" env-default:"2024-02-15-preview"`
	OpenAIModel      string `env:"OPENAI_MODEL" env-default:"gpt-4.1"`
	EmbeddingModel   string `env:"EMBEDDING_MODEL" env-default:"text-embedding-3-small"`
	EmbeddingDim     uint64 `env:"EMBEDDING_DIM" env-default:"1536"`
	GoogleProject    string `env:"GOOGLE_CLOUD_PROJECT"`
	GoogleLocation   string `env:"GOOGLE_CLOUD_LOCATION" env-default:"us-central1"`
	GeminiModel      string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	GeminiEmbedModel string `env:"GEMINI_EMBED_MODEL" env-default:"text-embedding-004"`

	MaxOutputTokens int           `env:"MAX_OUTPUT_TOKENS" env-default:"1000"`
	GenTimeout      time.Duration `env:"GEN_TIMEOUT" env-default:"60s"`
	ExecTimeout     time.Duration `env:"EXEC_TIMEOUT" env-default:"30s"`

	// Custom base instructions for the system message; the built-in
	// default is used when empty.
	InitialPrompt string `env:"INITIAL_PROMPT"`

	// Cost accounting. The default CostScale applies an extra 1e-6 on
	// top of the per-token rates; set it to 1 for plain USD.
	InputTokenRate  float64 `env:"INPUT_TOKEN_RATE" env-default:"0.0000015"`
	OutputTokenRate float64 `env:"OUTPUT_TOKEN_RATE" env-default:"0.000006"`
	CostScale       float64 `env:"COST_SCALE" env-default:"0.000001"`

	// Target database and audit log
	DBPath    string `env:"DB_PATH" env-default:"financial.sqlite"`
	AuditPath string `env:"AUDIT_LOG_PATH" env-default:"query_log.xlsx"`

	// Token budget limiter; disabled when RedisAddr is empty.
	RedisAddr   string `env:"REDIS_ADDR"`
	TokenBudget int    `env:"CALLER_TOKEN_BUDGET" env-default:"250000"`
}

// Load reads configuration from the environment, applies defaults, and
// validates that the selected provider has its required credentials.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case "gemini":
		if c.GoogleProject == "" {
			return errors.New("GOOGLE_CLOUD_PROJECT is required when LLM_PROVIDER=gemini")
		}
	default:
		return errors.New("LLM_PROVIDER must be \"openai\" or \"gemini\", got " + c.LLMProvider)
	}
	if c.TopK <= 0 {
		return errors.New("RETRIEVAL_TOP_K must be positive")
	}
	if c.InputTokenRate < 0 || c.OutputTokenRate < 0 || c.CostScale < 0 {
		return errors.New("token rates and cost scale must be non-negative")
	}
	return nil
}
