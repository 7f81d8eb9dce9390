package repository

import (
	"context"
	"sync"
	"time"

	"tip-advisor/domain"
)

// MemorySessionRepository keeps sessions in process memory.
type MemorySessionRepository struct {
	mu   sync.Mutex
	data map[string]domain.SessionState
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		data: make(map[string]domain.SessionState),
	}
}

func (m *MemorySessionRepository) Create(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = domain.SessionState{UpdatedAt: time.Now().UTC()}
	return nil
}

func (m *MemorySessionRepository) Get(ctx context.Context, id string) (domain.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.data[id]
	if !ok {
		return domain.SessionState{}, ErrSessionNotFound
	}
	return state, nil
}

func (m *MemorySessionRepository) TryBeginLoading(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.data[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	if state.Loading {
		return false, nil
	}
	state.Loading = true
	m.data[id] = state
	return true, nil
}

func (m *MemorySessionRepository) Complete(
	ctx context.Context,
	id string,
	outcome domain.SuggestionOutcome,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = domain.SessionState{
		Loading:    false,
		Suggestion: outcome.Display(),
		Failed:     outcome.Failed(),
		UpdatedAt:  time.Now().UTC(),
	}
	return nil
}
