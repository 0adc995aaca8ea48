// Package planstore holds the single shared slot that carries the most recently
// generated roadmap from the synthesizer to the task scheduler.
package planstore

import (
	"context"
	"errors"
	"sync"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

// Key is the well-known slot name of the latest roadmap.
const Key = "aiRoadmap"

// ErrEmpty is returned by Load before any roadmap has been saved.
var ErrEmpty = errors.New("plan store is empty")

// Store is last-write-wins storage for one roadmap. Load never removes the entry.
type Store interface {
	Save(ctx context.Context, rm domain.Roadmap) error
	Load(ctx context.Context) (domain.Roadmap, error)
}

// Memory is an in-process Store.
type Memory struct {
	mu  sync.Mutex
	rm  *domain.Roadmap
	ver int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Save(_ context.Context, rm domain.Roadmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := clone(rm)
	m.rm = &cp
	m.ver++
	return nil
}

func (m *Memory) Load(_ context.Context) (domain.Roadmap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rm == nil {
		return domain.Roadmap{}, ErrEmpty
	}
	return clone(*m.rm), nil
}

// Version counts saves; it lets tests observe overwrites.
func (m *Memory) Version() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ver
}

func clone(rm domain.Roadmap) domain.Roadmap {
	out := rm
	out.Goals = append([]domain.Goal(nil), rm.Goals...)
	out.Phases = make([]domain.Phase, len(rm.Phases))
	for i, ph := range rm.Phases {
		ph.Tasks = append([]string(nil), ph.Tasks...)
		out.Phases[i] = ph
	}
	return out
}
