package importer

import (
	"context"
	"strings"
	"sync"
	"time"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
	"grocery-manager/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	sessionTTL      = 30 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// ListGenerator is the text-generation service as seen by the import
// pipeline.
type ListGenerator interface {
	GenerateShoppingList(ctx context.Context, recipeText string, servings int) ([]recipe.NormalizedItem, error)
}

// Inventory is the reconciler surface the pipeline needs: the current owned
// name pool and the confirmed-batch sink.
type Inventory interface {
	OwnedNames() []string
	AddImportedItems(ctx context.Context, items []grocery.ImportedItem) []grocery.GroceryItem
}

// Manager holds live import sessions keyed by id and expires abandoned ones.
type Manager struct {
	mu       sync.Mutex
	gen      ListGenerator
	inv      Inventory
	sessions map[string]*Session
}

// NewManager creates a session manager and starts its expiry sweep.
func NewManager(gen ListGenerator, inv Inventory) *Manager {
	m := &Manager{
		gen:      gen,
		inv:      inv,
		sessions: make(map[string]*Session),
	}
	go m.startCleanup()
	return m
}

// Create opens a new idle session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        common.GenerateUUID(),
		State:     StateIdle,
		CreatedAt: time.Now(),
	}
	m.sessions[s.ID] = s
	return s.snapshot()
}

// Submit runs the generation step of a session: it validates the input,
// invokes the text-generation service and builds the checklist, computing
// ownership against the owned pool as it stood at submit time. On a service
// failure the session moves to Failed with a user-facing message and an empty
// checklist.
func (m *Manager) Submit(ctx context.Context, id, recipeText string, servings int) (*Session, error) {
	if strings.TrimSpace(recipeText) == "" {
		return nil, common.NewValidationError("Please paste a recipe.")
	}
	if servings < 1 {
		return nil, common.NewValidationError("Servings must be at least 1.")
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, common.ErrSessionExpired
	}
	s.State = StateGenerating
	s.Rows = nil
	s.Error = ""
	m.mu.Unlock()

	// The pool is captured before the call; the checklist reflects ownership
	// at submit time.
	pool := m.inv.OwnedNames()
	items, err := m.gen.GenerateShoppingList(ctx, recipeText, servings)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok = m.sessions[id]
	if !ok {
		// Closed while the call was outstanding; drop the reply.
		return nil, common.ErrSessionExpired
	}

	if err != nil {
		s.State = StateFailed
		s.Error = err.Error()
		common.LogWarn("shopping list generation failed",
			zap.String("session", id),
			zap.Error(err),
		)
		return s.snapshot(), nil
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		owned := grocery.IsOwned(item.NormalizedName, pool)
		rows = append(rows, Row{
			NormalizedItem: item,
			Checked:        !owned,
			Owned:          owned,
		})
	}
	s.Rows = rows
	s.State = StateReady
	return s.snapshot(), nil
}

// Toggle flips the checked state of the named row. Only valid in Ready; the
// state does not change.
func (m *Manager) Toggle(id, itemName string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, common.ErrSessionExpired
	}
	if s.State != StateReady {
		return nil, common.NewValidationError("No generated items to toggle.")
	}
	for i := range s.Rows {
		if s.Rows[i].Name == itemName {
			s.Rows[i].Checked = !s.Rows[i].Checked
		}
	}
	return s.snapshot(), nil
}

// Confirm promotes all checked rows to the shopping list (checked/owned flags
// stripped, exact lowercase-name dedupe applied by the reconciler) and
// discards the session. Returns the items actually added.
func (m *Manager) Confirm(ctx context.Context, id string) ([]grocery.GroceryItem, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, common.ErrSessionExpired
	}
	if s.State != StateReady {
		m.mu.Unlock()
		return nil, common.NewValidationError("No generated items to add.")
	}

	var batch []grocery.ImportedItem
	for _, row := range s.Rows {
		if row.Checked {
			batch = append(batch, grocery.ImportedItem{
				Name:     row.Name,
				Category: row.Category,
			})
		}
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	return m.inv.AddImportedItems(ctx, batch), nil
}

// Close discards a session from any state without mutating any list.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for id, s := range m.sessions {
			if now.Sub(s.CreatedAt) > sessionTTL {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
