// Package embedcache stores embeddings in Badger so repeated texts skip the
// embedding backend. Cache faults never fail a request.
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/embedding"
)

const keyPrefix = "emb:"

// Options configures a Cache.
type Options struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// TTL expires entries. Zero keeps them forever.
	TTL time.Duration
	// Namespace separates vectors from different embedding models.
	Namespace string
}

// Cache is an embedding.Embedder that consults Badger before calling next.
type Cache struct {
	db        *badger.DB
	next      embedding.Embedder
	ttl       time.Duration
	namespace string
}

var _ embedding.Embedder = (*Cache)(nil)

// badgerLogger adapts slog.Logger to the badger.Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, items ...any) {
	l.logger.Error(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Warningf(msg string, items ...any) {
	l.logger.Warn(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Infof(msg string, items ...any) {
	l.logger.Debug(fmt.Sprintf(msg, items...))
}

func (l *badgerLogger) Debugf(msg string, items ...any) {
	l.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a cache in front of next.
func Open(next embedding.Embedder, opts Options) (*Cache, error) {
	if next == nil {
		return nil, errors.New("embedcache: nil embedder")
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("embedcache: path is required")
		}
		if err := os.MkdirAll(opts.Path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts.Logger = &badgerLogger{logger: slog.Default().With("component", "embedcache")}
	bopts.Compression = options.None

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	return &Cache{db: db, next: next, ttl: opts.TTL, namespace: opts.Namespace}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// EmbedText embeds a single text.
func (c *Cache) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedTexts returns cached vectors where present and embeds the rest in one
// call to the wrapped embedder.
func (c *Cache) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	logger := contextutil.LoggerFromContext(ctx)

	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	cached, err := c.lookup(texts)
	if err != nil {
		logger.WarnContext(ctx, "embedding cache read failed", "error", err)
		cached = nil
	}
	for i, text := range texts {
		if i < len(cached) && cached[i] != nil {
			out[i] = cached[i]
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	logger.DebugContext(ctx, "embedding cache lookup", "texts", len(texts), "misses", len(missTexts))
	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.next.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(missTexts), len(vecs))
	}
	for j, i := range missIdx {
		out[i] = vecs[j]
	}

	if err := c.store(missTexts, vecs); err != nil {
		logger.WarnContext(ctx, "embedding cache write failed", "error", err)
	}
	return out, nil
}

func (c *Cache) key(text string) []byte {
	sum := sha256.Sum256([]byte(text))
	return []byte(keyPrefix + c.namespace + ":" + hex.EncodeToString(sum[:]))
}

// lookup returns one entry per text, nil where absent or unreadable.
func (c *Cache) lookup(texts []string) ([][]float32, error) {
	found := make([][]float32, len(texts))
	err := c.db.View(func(txn *badger.Txn) error {
		for i, text := range texts {
			item, err := txn.Get(c.key(text))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to read entry: %w", err)
			}
			if vec, ok := decode(raw); ok {
				found[i] = vec
			}
		}
		return nil
	})
	return found, err
}

func (c *Cache) store(texts []string, vecs [][]float32) error {
	return c.db.Update(func(txn *badger.Txn) error {
		for i, text := range texts {
			entry := badger.NewEntry(c.key(text), encode(vecs[i]))
			if c.ttl > 0 {
				entry = entry.WithTTL(c.ttl)
			}
			if err := txn.SetEntry(entry); err != nil {
				return fmt.Errorf("failed to set entry: %w", err)
			}
		}
		return nil
	})
}

// encode writes v as little-endian float32 bits.
func encode(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decode(raw []byte) ([]float32, bool) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, false
	}
	v := make([]float32, len(raw)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return v, true
}
