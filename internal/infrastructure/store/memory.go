package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
	"grocery-manager/internal/pkg/common"
)

// Memory is an in-process repository with the same blob semantics as the
// Redis one. It backs tests and the store.driver=memory configuration.
type Memory struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	profile string
}

// NewMemory creates an empty in-memory repository scoped to the given
// profile.
func NewMemory(profile string) *Memory {
	return &Memory{
		blobs:   make(map[string][]byte),
		profile: profile,
	}
}

// LoadInHouse loads the in-house sequence, empty on any failure.
func (m *Memory) LoadInHouse(ctx context.Context) []grocery.GroceryItem {
	var items []grocery.GroceryItem
	if !m.load(KeyInHouseItems, &items) {
		return nil
	}
	return items
}

// LoadShopping loads the shopping sequence, empty on any failure.
func (m *Memory) LoadShopping(ctx context.Context) []grocery.GroceryItem {
	var items []grocery.GroceryItem
	if !m.load(KeyShoppingListItems, &items) {
		return nil
	}
	return items
}

// LoadRecipes loads the saved recipes, empty on any failure.
func (m *Memory) LoadRecipes(ctx context.Context) []recipe.Recipe {
	var recipes []recipe.Recipe
	if !m.load(KeyRecipes, &recipes) {
		return nil
	}
	return recipes
}

// SaveInHouse writes the in-house sequence.
func (m *Memory) SaveInHouse(ctx context.Context, items []grocery.GroceryItem) error {
	return m.save(KeyInHouseItems, items)
}

// SaveShopping writes the shopping sequence.
func (m *Memory) SaveShopping(ctx context.Context, items []grocery.GroceryItem) error {
	return m.save(KeyShoppingListItems, items)
}

// SaveRecipes writes the saved recipes.
func (m *Memory) SaveRecipes(ctx context.Context, recipes []recipe.Recipe) error {
	return m.save(KeyRecipes, recipes)
}

// SwitchProfile repoints the repository at another profile.
func (m *Memory) SwitchProfile(profile string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = profile
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// SetBlob stores a raw blob under a profile key. Tests use it to seed corrupt
// or pre-existing state.
func (m *Memory) SetBlob(profile, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[profile+":"+name] = data
}

// load reports whether v holds a cleanly decoded blob. A failed decode can
// leave partial data in v; callers must discard it.
func (m *Memory) load(name string, v interface{}) bool {
	m.mu.RLock()
	data, ok := m.blobs[m.profile+":"+name]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		common.LogWarn("store blob corrupt, falling back to empty",
			zap.String("key", name),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (m *Memory) save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[m.profile+":"+name] = data
	return nil
}
