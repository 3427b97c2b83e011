// Package graph mirrors investors and match results into a Neo4j-compatible graph.
package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"dealmatch/internal/contextutil"
	"dealmatch/internal/model"
)

// Querier runs a single Cypher statement.
type Querier interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Driver is a Querier backed by neo4j.DriverWithContext. It works against
// Neo4j and Memgraph.
type Driver struct {
	driver neo4j.DriverWithContext
}

var _ Querier = (*Driver)(nil)

// Connect opens a driver and verifies connectivity.
func Connect(ctx context.Context, uri, username, password string) (*Driver, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}
	if err := d.VerifyConnectivity(ctx); err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("failed to connect to graph at %s: %w", uri, err)
	}
	return &Driver{driver: d}, nil
}

// ExecuteQuery runs query with params and collects all records.
func (d *Driver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result, nil
}

// Close closes the driver.
func (d *Driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

const (
	constraintInvestor = `CREATE CONSTRAINT investor_name IF NOT EXISTS FOR (i:Investor) REQUIRE i.name IS UNIQUE`
	constraintPitch    = `CREATE CONSTRAINT pitch_id IF NOT EXISTS FOR (p:Pitch) REQUIRE p.id IS UNIQUE`

	mergeInvestor = `MERGE (i:Investor {name: $name})
SET i.firm = $firm, i.sectors = $sectors, i.stages = $stages, i.geo = $geo, i.thesis = $thesis
WITH i
UNWIND $sector_tags AS tag
MERGE (s:Sector {name: tag})
MERGE (i)-[:FOCUSES_ON]->(s)`

	mergeMatches = `MERGE (p:Pitch {id: $pitch_id})
SET p.summary = $summary, p.sector = $sector, p.stage = $stage, p.geo = $geo
WITH p
UNWIND $matches AS m
MERGE (i:Investor {name: m.investor})
MERGE (p)-[r:MATCHED]->(i)
SET r.score_pct = m.score_pct, r.distance = m.distance, r.updated_at = datetime()`

	relatedInvestors = `MATCH (:Investor {name: $name})-[:FOCUSES_ON]->(s:Sector)<-[:FOCUSES_ON]-(other:Investor)
WITH other, count(s) AS shared
RETURN other.name AS name, shared
ORDER BY shared DESC, name
LIMIT $limit`
)

// Syncer writes domain records to the graph.
type Syncer struct {
	q Querier
}

// NewSyncer creates a Syncer.
func NewSyncer(q Querier) *Syncer {
	return &Syncer{q: q}
}

// EnsureConstraints creates uniqueness constraints. Failures are logged, since
// some servers reject the IF NOT EXISTS form; merges still work without them.
func (s *Syncer) EnsureConstraints(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)
	for _, q := range []string{constraintInvestor, constraintPitch} {
		if _, err := s.q.ExecuteQuery(ctx, q, nil); err != nil {
			logger.WarnContext(ctx, "failed to create graph constraint", "query", q, "error", err)
		}
	}
}

// SyncInvestor upserts an investor node and links it to its sector tags.
func (s *Syncer) SyncInvestor(ctx context.Context, inv model.Investor) error {
	if strings.TrimSpace(inv.Name) == "" {
		return errors.New("investor name is required")
	}
	_, err := s.q.ExecuteQuery(ctx, mergeInvestor, map[string]any{
		"name":        inv.Name,
		"firm":        inv.Firm,
		"sectors":     inv.Sectors,
		"stages":      inv.Stages,
		"geo":         inv.Geo,
		"thesis":      inv.Thesis,
		"sector_tags": Tags(inv.Sectors),
	})
	if err != nil {
		return fmt.Errorf("failed to sync investor %s: %w", inv.Name, err)
	}
	return nil
}

// RecordMatches upserts the pitch node and one MATCHED edge per match.
func (s *Syncer) RecordMatches(ctx context.Context, pitch *model.Pitch, matches []model.Match) error {
	if pitch == nil || pitch.ID == "" {
		return errors.New("pitch id is required")
	}

	rows := make([]map[string]any, len(matches))
	for i, m := range matches {
		var distance any
		if m.Distance != nil {
			distance = *m.Distance
		}
		rows[i] = map[string]any{
			"investor":  m.InvestorName,
			"score_pct": int64(m.ScorePct),
			"distance":  distance,
		}
	}

	_, err := s.q.ExecuteQuery(ctx, mergeMatches, map[string]any{
		"pitch_id": pitch.ID,
		"summary":  pitch.Summary,
		"sector":   pitch.Sector,
		"stage":    pitch.Stage,
		"geo":      pitch.Geo,
		"matches":  rows,
	})
	if err != nil {
		return fmt.Errorf("failed to record matches for pitch %s: %w", pitch.ID, err)
	}
	return nil
}

// Related is an investor sharing sector tags with another.
type Related struct {
	Name   string `json:"name"`
	Shared int    `json:"shared_sectors"`
}

// RelatedInvestors lists investors sharing sector tags with name, most shared first.
func (s *Syncer) RelatedInvestors(ctx context.Context, name string, limit int) ([]Related, error) {
	if limit <= 0 {
		limit = 5
	}
	res, err := s.q.ExecuteQuery(ctx, relatedInvestors, map[string]any{"name": name, "limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("failed to query related investors: %w", err)
	}

	out := make([]Related, 0, len(res.Records))
	for _, rec := range res.Records {
		n, _, err := neo4j.GetRecordValue[string](rec, "name")
		if err != nil {
			return nil, fmt.Errorf("failed to read related investor name: %w", err)
		}
		shared, _, err := neo4j.GetRecordValue[int64](rec, "shared")
		if err != nil {
			return nil, fmt.Errorf("failed to read shared count: %w", err)
		}
		out = append(out, Related{Name: n, Shared: int(shared)})
	}
	return out, nil
}

// Tags splits a comma, semicolon or slash separated list into lowercase,
// de-duplicated tags in input order.
func Tags(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tag := strings.ToLower(strings.TrimSpace(f))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
