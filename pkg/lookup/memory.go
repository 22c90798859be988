package lookup

import (
	"context"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// Memory is an in-process checker, handy for tests and small fixed lists.
// Values are compared by their string form.
type Memory struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

// NewMemory creates an empty checker.
func NewMemory() *Memory {
	return &Memory{sets: make(map[string]map[string]struct{})}
}

// Add records values as present under target.
func (m *Memory) Add(target string, values ...any) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[target]
	if !ok {
		set = make(map[string]struct{}, len(values))
		m.sets[target] = set
	}
	for _, v := range values {
		set[predicate.ToString(v)] = struct{}{}
	}
	return m
}

// Remove forgets values under target.
func (m *Memory) Remove(target string, values ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range values {
		delete(m.sets[target], predicate.ToString(v))
	}
}

func (m *Memory) Exists(ctx context.Context, target string, value any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sets[target][predicate.ToString(value)]
	return ok, nil
}
