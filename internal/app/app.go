// Package app wires configuration into the storage, recall and service layers
// shared by the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dealmatch/internal/config"
	"dealmatch/internal/embedcache"
	"dealmatch/internal/embedding"
	"dealmatch/internal/graph"
	"dealmatch/internal/ingest"
	"dealmatch/internal/lexical"
	"dealmatch/internal/llm"
	"dealmatch/internal/qa"
	"dealmatch/internal/recall"
	"dealmatch/internal/retrieval"
	"dealmatch/internal/service"
	"dealmatch/internal/similarity"
	"dealmatch/internal/storage"
	"dealmatch/internal/vectorstore"
)

// App holds the long-lived components built from a Config.
type App struct {
	Config *config.Config

	DB        *sql.DB
	Investors *storage.InvestorRepo
	Matches   *storage.MatchRepo
	Answers   *storage.QARepo

	Embedder embedding.Embedder
	Vectors  *vectorstore.QdrantStore
	// Graph is nil when NEO4J_URI is unset or unreachable.
	Graph *graph.Syncer

	MatchService    service.MatchService
	InvestorService service.InvestorService

	generator llm.Generator
	cache     *embedcache.Cache
	driver    *graph.Driver
}

// New opens every backend named by cfg. An unreachable vector index or graph
// is logged and matching runs lexically.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close(ctx)
		}
	}()

	a.DB, err = storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(a.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	a.Investors = storage.NewInvestorRepo(a.DB)
	a.Matches = storage.NewMatchRepo(a.DB)
	a.Answers = storage.NewQARepo(a.DB)

	if err := a.openEmbedder(cfg); err != nil {
		return nil, err
	}

	a.Vectors, err = vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	if err := a.Vectors.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		slog.Warn("Qdrant collection unavailable, vector recall will fall back to lexical",
			"collection", cfg.QdrantCollection, "error", err)
	} else {
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	if cfg.Neo4jURI != "" {
		a.driver, err = graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			slog.Warn("Graph sync disabled", "uri", cfg.Neo4jURI, "error", err)
			err = nil
		} else {
			a.Graph = graph.NewSyncer(a.driver)
			a.Graph.EnsureConstraints(ctx)
			slog.Info("Graph sync enabled", "uri", cfg.Neo4jURI)
		}
	}

	a.generator, err = llm.NewGenerator(ctx, llm.Config{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModelName,
		APIKey:   cfg.LLMAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM generator: %w", err)
	}
	slog.Debug("LLM configuration", "provider", cfg.LLMProvider, "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)

	a.buildServices()
	return a, nil
}

func (a *App) openEmbedder(cfg *config.Config) error {
	apiKey := cfg.EmbeddingAPIKey
	if apiKey == "" {
		apiKey = cfg.LLMAPIKey
	}
	client, err := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, apiKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if err != nil {
		return fmt.Errorf("failed to create embeddings client: %w", err)
	}
	a.Embedder = client

	if cfg.EmbeddingCachePath == "" {
		return nil
	}
	a.cache, err = embedcache.Open(client, embedcache.Options{
		Path:      cfg.EmbeddingCachePath,
		TTL:       cfg.EmbeddingCacheTTL,
		Namespace: cfg.EmbeddingModelName,
	})
	if err != nil {
		return fmt.Errorf("failed to open embedding cache: %w", err)
	}
	a.Embedder = a.cache
	slog.Info("Embedding cache enabled", "path", cfg.EmbeddingCachePath, "ttl", cfg.EmbeddingCacheTTL)
	return nil
}

func (a *App) buildServices() {
	r := a.Config.Ranking

	scorer := lexical.NewScorer(lexical.DefaultBuckets(r.Caps))
	recaller := recall.NewRecaller(
		recall.NewLexicalSource(a.Investors, scorer,
			recall.WithScanLimit(r.ScanLimit),
			recall.WithThreshold(r.LexicalThreshold)),
		recall.NewVectorSource(a.Embedder, a.Vectors, a.Config.QdrantCollection),
	)

	sinks := []service.MatchSink{a.Matches}
	if a.Graph != nil {
		sinks = append(sinks, a.Graph)
	}

	var generator service.Generator
	if a.generator != nil {
		generator = a.generator
	}
	a.MatchService = service.NewMatchService(recaller, generator, service.MatchConfig{
		CandidateK: r.CandidateK,
		TopN:       r.TopN,
		Weights:    r.Weights,
	}, sinks...)

	retriever := retrieval.NewRetriever(a.Embedder)
	composer := qa.NewComposer(retriever,
		qa.WithTarget(r.QATarget, r.QAFetch),
		qa.WithChunkSize(r.ChunkSize))
	analyzer := qa.NewAnalyzer(retriever, similarity.New(a.Embedder))
	a.InvestorService = service.NewInvestorService(a.Investors, composer, analyzer, a.Answers)
}

// NewSeeder returns a Seeder writing to every configured backend.
// Callers must Release it.
func (a *App) NewSeeder(poolSize int) (*ingest.Seeder, error) {
	opts := []ingest.Option{
		ingest.WithPoolSize(poolSize),
		ingest.WithVectorIndex(a.Embedder, a.Vectors, a.Config.QdrantCollection),
	}
	if a.Graph != nil {
		opts = append(opts, ingest.WithGraph(a.Graph))
	}
	return ingest.NewSeeder(a.Investors, opts...)
}

// Close releases every backend that was opened.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if c, ok := a.generator.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.Vectors != nil {
		errs = append(errs, a.Vectors.Close())
	}
	if a.driver != nil {
		errs = append(errs, a.driver.Close(ctx))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
