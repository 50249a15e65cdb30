package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/llgram/internal/util"
	"github.com/dekarrin/llgram/server/dao"
	"github.com/google/uuid"
)

func NewAnalysesRepository() *InMemoryAnalysesRepository {
	return &InMemoryAnalysesRepository{
		analyses: make(map[uuid.UUID]dao.Analysis),
	}
}

type InMemoryAnalysesRepository struct {
	mtx      sync.RWMutex
	analyses map[uuid.UUID]dao.Analysis
}

func (imar *InMemoryAnalysesRepository) Close() error {
	return nil
}

func (imar *InMemoryAnalysesRepository) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imar.mtx.Lock()
	defer imar.mtx.Unlock()

	if _, ok := imar.analyses[newUUID]; ok {
		return dao.Analysis{}, dao.ErrConstraintViolation
	}

	a.ID = newUUID
	a.Grammar = a.Grammar.Copy()
	a.Created = time.Now()

	imar.analyses[a.ID] = a

	return withOwnGrammar(a), nil
}

func (imar *InMemoryAnalysesRepository) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	imar.mtx.RLock()
	defer imar.mtx.RUnlock()

	all := make([]dao.Analysis, 0, len(imar.analyses))
	for k := range imar.analyses {
		all = append(all, withOwnGrammar(imar.analyses[k]))
	}

	all = util.SortBy(all, func(l, r dao.Analysis) bool {
		if l.Created.Equal(r.Created) {
			return l.ID.String() < r.ID.String()
		}
		return l.Created.Before(r.Created)
	})

	return all, nil
}

func (imar *InMemoryAnalysesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	imar.mtx.RLock()
	defer imar.mtx.RUnlock()

	a, ok := imar.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	return withOwnGrammar(a), nil
}

func (imar *InMemoryAnalysesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	imar.mtx.Lock()
	defer imar.mtx.Unlock()

	a, ok := imar.analyses[id]
	if !ok {
		return dao.Analysis{}, dao.ErrNotFound
	}

	delete(imar.analyses, id)

	return a, nil
}

// withOwnGrammar gives a its own copy of its grammar so that callers analyzing
// it do not share the stored grammar's FIRST and FOLLOW cache.
func withOwnGrammar(a dao.Analysis) dao.Analysis {
	a.Grammar = a.Grammar.Copy()
	return a
}
