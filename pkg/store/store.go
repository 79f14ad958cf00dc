// Package store persists saved analyses.
//
// An Analysis bundles the raw source text with its parsed graph and metrics
// so it can be reloaded without re-parsing. Two backends are provided:
// MemoryStore for development and tests, and MongoStore for deployments
// (the graphio and metrics types carry bson tags for this purpose).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowgraph/pkg/graphio"
	"github.com/matzehuels/flowgraph/pkg/metrics"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one saved parse result.
type Analysis struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	Source    string         `json:"source" bson:"source"`
	Mode      string         `json:"mode" bson:"mode"`
	Graph     graphio.Graph  `json:"graph" bson:"graph"`
	Metrics   metrics.Report `json:"metrics" bson:"metrics"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// NewID returns a fresh analysis identifier.
func NewID() string {
	return uuid.NewString()
}

// Store is the interface for analysis persistence backends.
type Store interface {
	// Save stores an analysis, overwriting any existing one with the same ID.
	Save(ctx context.Context, a *Analysis) error

	// Get retrieves an analysis by ID.
	// Returns ErrNotFound when it does not exist.
	Get(ctx context.Context, id string) (*Analysis, error)

	// List returns up to limit analyses, newest first.
	// A limit of 0 applies the backend default.
	List(ctx context.Context, limit int) ([]Analysis, error)

	// Delete removes an analysis. Returns ErrNotFound when it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller passes 0.
const DefaultListLimit = 50
