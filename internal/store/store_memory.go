package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a ScenarioRepository backed by a map.
type MemoryRepository struct {
	mu        sync.RWMutex
	scenarios map[uuid.UUID]StoredScenario
	order     []uuid.UUID
	now       func() time.Time
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		scenarios: make(map[uuid.UUID]StoredScenario),
		now:       time.Now,
	}
}

// Create assigns a fresh id and creation time and stores the scenario.
func (r *MemoryRepository) Create(ctx context.Context, s StoredScenario) (StoredScenario, error) {
	if err := ctx.Err(); err != nil {
		return StoredScenario{}, err
	}
	s.ID = uuid.New()
	s.CreatedAt = r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[s.ID] = s
	r.order = append(r.order, s.ID)
	return s, nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (StoredScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.scenarios[id]; ok {
		return s, nil
	}
	return StoredScenario{}, ErrNotFound
}

func (r *MemoryRepository) List(ctx context.Context, userID string) ([]StoredScenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StoredScenario, 0, len(r.order))
	for _, id := range r.order {
		s := r.scenarios[id]
		if userID == "" || s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scenarios[id]; !ok {
		return ErrNotFound
	}
	delete(r.scenarios, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
