package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks dealmatch/internal/vectorstore VectorStore

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// Neighbor is one nearest-neighbor hit.
// Distance is a cosine distance in [0,2]. Certainty is set only by stores
// that report a calibrated [0,1] value.
type Neighbor struct {
	PointID   string
	Distance  *float64
	Certainty *float64
	Meta      map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Nearest returns the k closest points to vector.
	Nearest(ctx context.Context, collection string, vector []float32, k int) ([]Neighbor, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// CollectionExists reports whether the collection has been created.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

var investorNamespace = uuid.MustParse("7b0c4f8e-3f7a-4c55-9a57-1d4f3c2a9e10")

// InvestorPointID derives a stable point ID from an investor name so re-seeding overwrites.
// Names differing only in case or surrounding space share an ID.
func InvestorPointID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(investorNamespace, []byte(key)).String()
}
