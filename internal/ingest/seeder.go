// Package ingest loads investor records into the relational store, the vector
// index and, when configured, the graph.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/embedding"
	"dealmatch/internal/model"
	"dealmatch/internal/vectorstore"
)

// DefaultBatchSize is how many investors are embedded per call.
const DefaultBatchSize = 16

// InvestorWriter persists investor rows.
type InvestorWriter interface {
	Upsert(ctx context.Context, inv model.Investor) error
}

// PointWriter upserts vectors into a collection.
type PointWriter interface {
	Upsert(ctx context.Context, collection string, points []vectorstore.Point) error
}

// GraphWriter mirrors an investor into the graph.
type GraphWriter interface {
	SyncInvestor(ctx context.Context, inv model.Investor) error
}

// Report counts what a Seed call wrote.
type Report struct {
	Stored  int `json:"stored"`
	Indexed int `json:"indexed"`
	Graphed int `json:"graphed"`
	Skipped int `json:"skipped"`
}

// Seeder writes investors in batches on a worker pool.
type Seeder struct {
	store      InvestorWriter
	embedder   embedding.Embedder
	points     PointWriter
	collection string
	graph      GraphWriter
	pool       *ants.Pool
	batchSize  int
}

// Option configures a Seeder.
type Option func(*Seeder) error

// WithPoolSize sets the number of concurrent batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Seeder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return fmt.Errorf("failed to create worker pool: %w", err)
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithBatchSize sets how many investors share one embedding call.
func WithBatchSize(n int) Option {
	return func(s *Seeder) error {
		if n > 0 {
			s.batchSize = n
		}
		return nil
	}
}

// WithVectorIndex embeds each investor's profile text and upserts it into collection.
func WithVectorIndex(embedder embedding.Embedder, points PointWriter, collection string) Option {
	return func(s *Seeder) error {
		if embedder == nil || points == nil {
			return errors.New("vector index requires an embedder and a point writer")
		}
		s.embedder = embedder
		s.points = points
		s.collection = collection
		return nil
	}
}

// WithGraph mirrors investors into the graph. Graph failures are logged only.
func WithGraph(g GraphWriter) Option {
	return func(s *Seeder) error {
		s.graph = g
		return nil
	}
}

// NewSeeder creates a Seeder writing rows to store.
func NewSeeder(store InvestorWriter, opts ...Option) (*Seeder, error) {
	if store == nil {
		return nil, errors.New("investor store is required")
	}

	s := &Seeder{store: store, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}
	if s.pool == nil {
		if err := WithPoolSize(runtime.NumCPU() / 2)(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Release releases the worker pool. The Seeder must not be used afterwards.
func (s *Seeder) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Seed writes investors and waits for every batch. Investors without a name
// are skipped. The returned error joins every batch failure.
func (s *Seeder) Seed(ctx context.Context, investors []model.Investor) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var report Report
	valid := make([]model.Investor, 0, len(investors))
	for _, inv := range investors {
		inv.Name = strings.TrimSpace(inv.Name)
		if inv.Name == "" {
			report.Skipped++
			continue
		}
		valid = append(valid, inv)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)
	for start := 0; start < len(valid); start += s.batchSize {
		batch := valid[start:min(start+s.batchSize, len(valid))]
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			r, err := s.seedBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			report.Stored += r.Stored
			report.Indexed += r.Indexed
			report.Graphed += r.Graphed
			if err != nil {
				errs = append(errs, err)
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("failed to submit batch at %d: %w", start, err))
			mu.Unlock()
		}
	}
	wg.Wait()

	logger.InfoContext(ctx, "seeded investors",
		"stored", report.Stored, "indexed", report.Indexed, "graphed", report.Graphed,
		"skipped", report.Skipped, "failed_batches", len(errs))
	return report, errors.Join(errs...)
}

func (s *Seeder) seedBatch(ctx context.Context, batch []model.Investor) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var r Report

	for _, inv := range batch {
		if err := s.store.Upsert(ctx, inv); err != nil {
			return r, fmt.Errorf("failed to store investor %s: %w", inv.Name, err)
		}
		r.Stored++
	}

	if s.points != nil {
		texts := make([]string, len(batch))
		for i, inv := range batch {
			texts[i] = inv.ProfileText()
		}
		vecs, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return r, fmt.Errorf("failed to embed investor profiles: %w", err)
		}
		if len(vecs) != len(batch) {
			return r, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vecs))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, inv := range batch {
			points[i] = vectorstore.Point{
				ID:   vectorstore.InvestorPointID(inv.Name),
				Vec:  vecs[i],
				Meta: inv.Payload(),
			}
		}
		if err := s.points.Upsert(ctx, s.collection, points); err != nil {
			return r, fmt.Errorf("failed to index investors: %w", err)
		}
		r.Indexed += len(points)
	}

	if s.graph != nil {
		for _, inv := range batch {
			if err := s.graph.SyncInvestor(ctx, inv); err != nil {
				logger.WarnContext(ctx, "failed to sync investor to graph", "investor", inv.Name, "error", err)
				continue
			}
			r.Graphed++
		}
	}
	return r, nil
}
