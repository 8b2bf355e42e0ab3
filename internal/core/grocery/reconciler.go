package grocery

import (
	"context"
	"strings"
	"sync"

	"grocery-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// List names the two reconciled sequences.
type List string

const (
	ListInHouse  List = "in-house"
	ListShopping List = "shopping"
)

// ParseList resolves a list name from a request path.
func ParseList(s string) (List, bool) {
	switch List(s) {
	case ListInHouse:
		return ListInHouse, true
	case ListShopping:
		return ListShopping, true
	}
	return "", false
}

// Store persists the reconciled lists. Write failures are logged by the
// reconciler and never surfaced to callers.
type Store interface {
	SaveInHouse(ctx context.Context, items []GroceryItem) error
	SaveShopping(ctx context.Context, items []GroceryItem) error
}

// Reconciler owns the in-house and shopping sequences and applies all
// mutations to them. Every operation keeps both sequences id-unique and is
// followed by a persistence write of the mutated sequence. Operations on ids
// that are not present are silent no-ops.
type Reconciler struct {
	mu       sync.Mutex
	store    Store
	inHouse  []GroceryItem
	shopping []GroceryItem
}

// NewReconciler creates a reconciler over the given initial sequences.
func NewReconciler(store Store, inHouse, shopping []GroceryItem) *Reconciler {
	return &Reconciler{
		store:    store,
		inHouse:  append([]GroceryItem(nil), inHouse...),
		shopping: append([]GroceryItem(nil), shopping...),
	}
}

// Reset replaces both sequences, used after a profile switch.
func (r *Reconciler) Reset(inHouse, shopping []GroceryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inHouse = append([]GroceryItem(nil), inHouse...)
	r.shopping = append([]GroceryItem(nil), shopping...)
}

// InHouse returns a copy of the in-house sequence.
func (r *Reconciler) InHouse() []GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GroceryItem(nil), r.inHouse...)
}

// Shopping returns a copy of the shopping sequence.
func (r *Reconciler) Shopping() []GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GroceryItem(nil), r.shopping...)
}

// OwnedNames returns the lowercased union of both sequences' names, the pool
// used for ownership matching.
func (r *Reconciler) OwnedNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return OwnedPool(r.inHouse, r.shopping)
}

// MoveToShoppingList removes the item from in-house and appends a copy to the
// shopping list with its quantity cleared.
func (r *Reconciler) MoveToShoppingList(ctx context.Context, itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexByID(r.inHouse, itemID)
	if idx == -1 {
		return
	}
	item := r.inHouse[idx]
	r.inHouse = append(r.inHouse[:idx], r.inHouse[idx+1:]...)

	item.Quantity = nil
	r.shopping = append(r.shopping, item)

	r.persistInHouse(ctx)
	r.persistShopping(ctx)
}

// MoveToInHouse removes the item from the shopping list. Catalog staples are
// restored to in-house with a default quantity of 1 pcs; one-time items are
// dropped entirely and do not round-trip.
func (r *Reconciler) MoveToInHouse(ctx context.Context, itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexByID(r.shopping, itemID)
	if idx == -1 {
		return
	}
	item := r.shopping[idx]
	r.shopping = append(r.shopping[:idx], r.shopping[idx+1:]...)

	if item.IsStandard {
		item.Quantity = &Quantity{Amount: 1, Unit: UnitPieces}
		r.inHouse = append(r.inHouse, item)
		r.persistInHouse(ctx)
	}
	r.persistShopping(ctx)
}

// UpdateQuantity replaces the quantity of an in-house item, clamping the
// amount to a minimum of 0. The unit is passed through verbatim.
func (r *Reconciler) UpdateQuantity(ctx context.Context, itemID string, q Quantity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := indexByID(r.inHouse, itemID)
	if idx == -1 {
		return
	}
	if q.Amount < 0 {
		q.Amount = 0
	}
	r.inHouse[idx].Quantity = &Quantity{Amount: q.Amount, Unit: q.Unit}

	r.persistInHouse(ctx)
}

// AddItem prepends a newly minted one-time item to the target list and
// returns it.
func (r *Reconciler) AddItem(ctx context.Context, list List, name string, category Category, quantity *Quantity) GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := GroceryItem{
		ID:       common.PrefixedID(PrefixOneTime),
		Name:     name,
		Category: category,
		Quantity: quantity,
	}

	switch list {
	case ListInHouse:
		r.inHouse = append([]GroceryItem{item}, r.inHouse...)
		r.persistInHouse(ctx)
	case ListShopping:
		item.Quantity = nil
		r.shopping = append([]GroceryItem{item}, r.shopping...)
		r.persistShopping(ctx)
	}
	return item
}

// DeleteItem removes an item by id from the target list.
func (r *Reconciler) DeleteItem(ctx context.Context, list List, itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch list {
	case ListInHouse:
		if idx := indexByID(r.inHouse, itemID); idx != -1 {
			r.inHouse = append(r.inHouse[:idx], r.inHouse[idx+1:]...)
			r.persistInHouse(ctx)
		}
	case ListShopping:
		if idx := indexByID(r.shopping, itemID); idx != -1 {
			r.shopping = append(r.shopping[:idx], r.shopping[idx+1:]...)
			r.persistShopping(ctx)
		}
	}
}

// Reorder removes the dragged item and reinserts it at the index the target
// occupied before the call, shifting the target and everything after it one
// position later. A no-op when either id is missing or both are the same.
func (r *Reconciler) Reorder(ctx context.Context, list List, draggedID, targetID string) {
	if draggedID == targetID {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var seq *[]GroceryItem
	switch list {
	case ListInHouse:
		seq = &r.inHouse
	case ListShopping:
		seq = &r.shopping
	default:
		return
	}

	draggedIdx := indexByID(*seq, draggedID)
	targetIdx := indexByID(*seq, targetID)
	if draggedIdx == -1 || targetIdx == -1 {
		return
	}

	items := append([]GroceryItem(nil), *seq...)
	dragged := items[draggedIdx]
	items = append(items[:draggedIdx], items[draggedIdx+1:]...)
	items = append(items[:targetIdx], append([]GroceryItem{dragged}, items[targetIdx:]...)...)
	*seq = items

	switch list {
	case ListInHouse:
		r.persistInHouse(ctx)
	case ListShopping:
		r.persistShopping(ctx)
	}
}

// AddImportedItems mints ids for a confirmed import batch, drops any whose
// lowercased name exactly matches an existing shopping list name, and appends
// the survivors. Returns the items actually added.
func (r *Reconciler) AddImportedItems(ctx context.Context, items []ImportedItem) []GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]struct{}, len(r.shopping))
	for _, item := range r.shopping {
		existing[strings.ToLower(item.Name)] = struct{}{}
	}

	var added []GroceryItem
	for _, imp := range items {
		if _, dup := existing[strings.ToLower(imp.Name)]; dup {
			continue
		}
		item := GroceryItem{
			ID:       common.PrefixedID(PrefixImported),
			Name:     imp.Name,
			Category: imp.Category,
		}
		r.shopping = append(r.shopping, item)
		existing[strings.ToLower(imp.Name)] = struct{}{}
		added = append(added, item)
	}

	if len(added) > 0 {
		r.persistShopping(ctx)
	}
	return added
}

// AppendShopping appends pre-built items (missing recipe ingredients) to the
// shopping list, skipping any id already present.
func (r *Reconciler) AppendShopping(ctx context.Context, items []GroceryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appended := false
	for _, item := range items {
		if indexByID(r.shopping, item.ID) != -1 {
			continue
		}
		r.shopping = append(r.shopping, item)
		appended = true
	}
	if appended {
		r.persistShopping(ctx)
	}
}

func (r *Reconciler) persistInHouse(ctx context.Context) {
	if err := r.store.SaveInHouse(ctx, r.inHouse); err != nil {
		common.LogWarn("failed to persist in-house list", zap.Error(err))
	}
}

func (r *Reconciler) persistShopping(ctx context.Context) {
	if err := r.store.SaveShopping(ctx, r.shopping); err != nil {
		common.LogWarn("failed to persist shopping list", zap.Error(err))
	}
}

func indexByID(items []GroceryItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
