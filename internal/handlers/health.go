package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dealmatch/internal/contextutil"
)

// CollectionChecker reports whether a vector collection exists.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// Pinger checks a connection, such as *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	vectorStore        CollectionChecker
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. A nil vectorStore skips the vector check.
func NewHealthHandler(db Pinger, vectorStore CollectionChecker, collectionName string) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		vectorStore:        vectorStore,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// The database is required. Matching still works lexically without the
// vector store, so a failing vector check only degrades the status.
//
// swagger:route GET /api/health healthCheck
//
// responses:
//
//	'200':
//	  description: System is healthy or degraded
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.vectorStore != nil {
		if h.checkVectorStore(checkCtx, logger) {
			checks["vector_store"] = "ok"
		} else {
			checks["vector_store"] = "error"
			issues = append(issues, "vector_store_unavailable")
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}
	writeJSON(ctx, w, httpStatus, response)
}

// checkVectorStore checks if the vector store is accessible.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) bool {
	exists, err := h.vectorStore.CollectionExists(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.collectionName)
		return false
	}
	return true
}
