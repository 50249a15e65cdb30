// Package inmem provides a dao.Store that keeps everything in memory. Nothing
// survives a restart.
package inmem

import (
	"github.com/dekarrin/llgram/server/dao"
)

type store struct {
	analyses *InMemoryAnalysesRepository
}

// NewDatastore returns an empty in-memory dao.Store.
func NewDatastore() dao.Store {
	return &store{
		analyses: NewAnalysesRepository(),
	}
}

func (s *store) Analyses() dao.AnalysisRepository {
	return s.analyses
}

func (s *store) Close() error {
	return s.analyses.Close()
}
