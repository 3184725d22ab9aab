// Package store provides register.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/asset-engine/register"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	assets map[string]register.Asset
}

func NewMemory() *Memory {
	return &Memory{assets: make(map[string]register.Asset)}
}

// Create adds an asset. Names are unique.
func (m *Memory) Create(_ context.Context, a register.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTakenLocked(a.Name, a.ID) {
		return register.ErrDuplicateName
	}
	if _, ok := m.assets[a.ID]; ok {
		return register.ErrDuplicateName
	}
	m.assets[a.ID] = a.Clone()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (register.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[id]
	if !ok {
		return register.Asset{}, register.ErrAssetNotFound
	}
	return a.Clone(), nil
}

// List returns matching assets, newest first.
func (m *Memory) List(_ context.Context, f register.Filter) ([]register.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]register.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		if f.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) Update(_ context.Context, a register.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[a.ID]; !ok {
		return register.ErrAssetNotFound
	}
	if m.nameTakenLocked(a.Name, a.ID) {
		return register.ErrDuplicateName
	}
	m.assets[a.ID] = a.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[id]; !ok {
		return register.ErrAssetNotFound
	}
	delete(m.assets, id)
	return nil
}

func (m *Memory) nameTakenLocked(name, exceptID string) bool {
	for id, a := range m.assets {
		if id != exceptID && a.Name == name {
			return true
		}
	}
	return false
}
