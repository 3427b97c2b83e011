package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"dealmatch/internal/lexical"
	"dealmatch/internal/qa"
	"dealmatch/internal/ranking"
	"dealmatch/internal/recall"
	"dealmatch/internal/retrieval"
	"dealmatch/internal/service"
)

// Config holds all configuration for the application.
type Config struct {
	LLMProvider  string
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	EmbeddingCachePath string
	EmbeddingCacheTTL  time.Duration

	DBPath           string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	APIPort   string
	LogLevel  string
	LogFormat string

	Ranking Ranking
}

// Ranking holds the tunables read from the RANKING_CONFIG TOML file.
type Ranking struct {
	Weights          ranking.Weights `toml:"weights"`
	Caps             lexical.Caps    `toml:"caps"`
	LexicalThreshold int             `toml:"lexical_threshold"`
	ScanLimit        int             `toml:"scan_limit"`
	CandidateK       int             `toml:"candidate_k"`
	TopN             int             `toml:"top_n"`
	ChunkSize        int             `toml:"chunk_size"`
	QATarget         int             `toml:"qa_target"`
	QAFetch          int             `toml:"qa_fetch"`
}

// DefaultRanking returns the built-in tunables.
func DefaultRanking() Ranking {
	return Ranking{
		Weights:    ranking.DefaultWeights,
		Caps:       lexical.DefaultCaps,
		ScanLimit:  recall.DefaultScanLimit,
		CandidateK: service.DefaultCandidateK,
		TopN:       service.DefaultTopN,
		ChunkSize:  retrieval.DefaultChunkSize,
		QATarget:   qa.DefaultTarget,
		QAFetch:    qa.DefaultFetch,
	}
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "none")),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingCachePath: getEnv("EMBEDDING_CACHE_PATH", ""),
		DBPath:             getEnv("DB_PATH", "./data/dealmatch.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "investors"),
		Neo4jURI:           getEnv("NEO4J_URI", ""),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// QDRANT_VECTOR_SIZE must match the output size of the embeddings model.
	// Changing it requires recreating the collection.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	ttl, err := time.ParseDuration(getEnv("EMBEDDING_CACHE_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_CACHE_TTL must be a duration: %w", err)
	}
	cfg.EmbeddingCacheTTL = ttl

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	cfg.Ranking = DefaultRanking()
	if path := getEnv("RANKING_CONFIG", ""); path != "" {
		if cfg.Ranking, err = LoadRanking(path); err != nil {
			return nil, err
		}
	}

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// LoadRanking reads a TOML ranking file over DefaultRanking. Keys absent
// from the file keep their defaults.
func LoadRanking(path string) (Ranking, error) {
	r := DefaultRanking()

	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read ranking config: %w", err)
	}
	if err := toml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to parse ranking config %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("invalid ranking config %s: %w", path, err)
	}
	return r, nil
}

// Validate checks the ranking tunables for values the pipeline cannot use.
func (r Ranking) Validate() error {
	if r.Weights.Lexical < 0 || r.Weights.Vector < 0 || r.Weights.Lexical+r.Weights.Vector == 0 {
		return fmt.Errorf("weights must be non-negative and not both zero")
	}
	if r.Caps.Sectors < 0 || r.Caps.Stages < 0 || r.Caps.Geo < 0 || r.Caps.ThesisConstraints < 0 {
		return fmt.Errorf("caps must be non-negative")
	}
	if r.LexicalThreshold < 0 || r.LexicalThreshold > 100 {
		return fmt.Errorf("lexical_threshold must be in [0,100]")
	}
	if r.TopN < 1 || r.TopN > service.MaxTopN {
		return fmt.Errorf("top_n must be in [1,%d]", service.MaxTopN)
	}
	if r.CandidateK < 1 || r.ScanLimit < 1 || r.ChunkSize < 1 {
		return fmt.Errorf("candidate_k, scan_limit and chunk_size must be positive")
	}
	if r.QATarget < 1 || r.QAFetch < r.QATarget {
		return fmt.Errorf("qa_target must be positive and qa_fetch at least qa_target")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level. Unknown names map to info.
func (c *Config) SlogLevel() slog.Level {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
