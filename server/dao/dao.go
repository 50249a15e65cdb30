// Package dao provides data access objects for use in the LLGram server.
package dao

import (
	"context"
	"time"

	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Analyses() AnalysisRepository
	Close() error
}

// AnalysisRepository persists analyses. A stored Analysis keeps only the
// grammar and the options it was analyzed with; everything else is computed
// again from those when it is read.
type AnalysisRepository interface {
	// Create creates a new Analysis. All attributes except for auto-generated
	// fields are taken from the provided Analysis.
	Create(ctx context.Context, a Analysis) (Analysis, error)

	// GetAll returns every Analysis, oldest first.
	GetAll(ctx context.Context) ([]Analysis, error)

	GetByID(ctx context.Context, id uuid.UUID) (Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) (Analysis, error)
	Close() error
}

// Analysis is a grammar submitted to the server for analysis.
type Analysis struct {
	ID      uuid.UUID
	Grammar grammar.Grammar

	// Normalize is whether left recursion and left factoring are removed
	// before the table is built.
	Normalize bool

	// Ambiguous is whether the table built for the grammar had conflicts. It
	// is stored so that listings do not need to analyze every grammar again.
	Ambiguous bool

	Created time.Time
}
