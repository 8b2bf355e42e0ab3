package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
	"grocery-manager/internal/pkg/common"
)

type stubListGenerator struct {
	items []recipe.NormalizedItem
	err   error
}

func (g *stubListGenerator) GenerateShoppingList(ctx context.Context, recipeText string, servings int) ([]recipe.NormalizedItem, error) {
	return g.items, g.err
}

type nopListStore struct{}

func (nopListStore) SaveInHouse(ctx context.Context, items []grocery.GroceryItem) error  { return nil }
func (nopListStore) SaveShopping(ctx context.Context, items []grocery.GroceryItem) error { return nil }

func testInventory() *grocery.Reconciler {
	inHouse := []grocery.GroceryItem{
		{ID: "standard-10", Name: "Eggs", Category: grocery.CategoryDairy},
	}
	shopping := []grocery.GroceryItem{
		{ID: "standard-19", Name: "Flour", Category: grocery.CategoryPantry},
	}
	return grocery.NewReconciler(nopListStore{}, inHouse, shopping)
}

func generatedItems() []recipe.NormalizedItem {
	return []recipe.NormalizedItem{
		{Name: "Eggs", Category: grocery.CategoryDairy, NormalizedName: "eggs"},
		{Name: "Buttermilk", Category: grocery.CategoryDairy, NormalizedName: "buttermilk"},
		{Name: "Maple Syrup", Category: grocery.CategoryPantry, NormalizedName: "maple syrup"},
	}
}

func TestSubmitValidation(t *testing.T) {
	m := NewManager(&stubListGenerator{}, testInventory())
	s := m.Create()

	_, err := m.Submit(context.Background(), s.ID, "   ", 2)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, "Please paste a recipe.", err.Error())

	_, err = m.Submit(context.Background(), s.ID, "Pancakes: flour, eggs, buttermilk", 0)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, "Servings must be at least 1.", err.Error())
}

func TestSubmitBuildsChecklistFromOwnership(t *testing.T) {
	gen := &stubListGenerator{items: generatedItems()}
	m := NewManager(gen, testInventory())
	s := m.Create()
	assert.Equal(t, StateIdle, s.State)

	s, err := m.Submit(context.Background(), s.ID, "Pancakes: flour, eggs, buttermilk", 2)
	require.NoError(t, err)

	assert.Equal(t, StateReady, s.State)
	require.Len(t, s.Rows, 3)

	// Eggs is owned, so it starts unchecked; the rest start checked.
	assert.True(t, s.Rows[0].Owned)
	assert.False(t, s.Rows[0].Checked)
	assert.False(t, s.Rows[1].Owned)
	assert.True(t, s.Rows[1].Checked)
	assert.False(t, s.Rows[2].Owned)
	assert.True(t, s.Rows[2].Checked)
}

func TestSubmitFailureMovesSessionToFailed(t *testing.T) {
	gen := &stubListGenerator{err: errors.New("Failed to parse the recipe. Please check the format or try again.")}
	m := NewManager(gen, testInventory())
	s := m.Create()

	s, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	assert.Equal(t, StateFailed, s.State)
	assert.Empty(t, s.Rows)
	assert.Contains(t, s.Error, "Failed to parse the recipe.")
}

func TestSubmitUnknownSession(t *testing.T) {
	m := NewManager(&stubListGenerator{}, testInventory())

	_, err := m.Submit(context.Background(), "nope", "Pancakes", 2)

	assert.Equal(t, common.ErrSessionExpired, err)
}

func TestToggleFlipsRow(t *testing.T) {
	m := NewManager(&stubListGenerator{items: generatedItems()}, testInventory())
	s := m.Create()
	_, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	s, err = m.Toggle(s.ID, "Eggs")
	require.NoError(t, err)
	assert.True(t, s.Rows[0].Checked)

	s, err = m.Toggle(s.ID, "Eggs")
	require.NoError(t, err)
	assert.False(t, s.Rows[0].Checked)
}

func TestToggleRequiresReadyState(t *testing.T) {
	m := NewManager(&stubListGenerator{}, testInventory())
	s := m.Create()

	_, err := m.Toggle(s.ID, "Eggs")

	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestConfirmAddsCheckedRowsAndDiscardsSession(t *testing.T) {
	inv := testInventory()
	m := NewManager(&stubListGenerator{items: generatedItems()}, inv)
	s := m.Create()
	_, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	added, err := m.Confirm(context.Background(), s.ID)
	require.NoError(t, err)

	// Buttermilk and Maple Syrup were checked; Eggs was not.
	require.Len(t, added, 2)
	assert.Equal(t, "Buttermilk", added[0].Name)
	assert.Equal(t, "Maple Syrup", added[1].Name)
	assert.Contains(t, added[0].ID, grocery.PrefixImported+"-")

	shopping := inv.Shopping()
	require.Len(t, shopping, 3)
	assert.Equal(t, "Buttermilk", shopping[1].Name)
	assert.Equal(t, "Maple Syrup", shopping[2].Name)

	// The session is gone.
	_, err = m.Confirm(context.Background(), s.ID)
	assert.Equal(t, common.ErrSessionExpired, err)
}

func TestConfirmDedupesAgainstShoppingList(t *testing.T) {
	inv := testInventory()
	items := []recipe.NormalizedItem{
		{Name: "flour", Category: grocery.CategoryPantry, NormalizedName: "flour"},
		{Name: "Buttermilk", Category: grocery.CategoryDairy, NormalizedName: "buttermilk"},
	}
	m := NewManager(&stubListGenerator{items: items}, inv)
	s := m.Create()
	_, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	// flour is owned (shopping list), starts unchecked; check it so both rows
	// are confirmed, then the reconciler drops the duplicate name.
	_, err = m.Toggle(s.ID, "flour")
	require.NoError(t, err)

	added, err := m.Confirm(context.Background(), s.ID)
	require.NoError(t, err)

	require.Len(t, added, 1)
	assert.Equal(t, "Buttermilk", added[0].Name)
}

func TestCloseDiscardsSessionWithoutMutation(t *testing.T) {
	inv := testInventory()
	m := NewManager(&stubListGenerator{items: generatedItems()}, inv)
	s := m.Create()
	_, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	m.Close(s.ID)

	assert.Len(t, inv.Shopping(), 1)
	_, err = m.Toggle(s.ID, "Eggs")
	assert.Equal(t, common.ErrSessionExpired, err)
}

func TestSnapshotIsDetached(t *testing.T) {
	m := NewManager(&stubListGenerator{items: generatedItems()}, testInventory())
	s := m.Create()
	s, err := m.Submit(context.Background(), s.ID, "Pancakes", 2)
	require.NoError(t, err)

	s.Rows[0].Checked = true

	fresh, err := m.Toggle(s.ID, "Buttermilk")
	require.NoError(t, err)
	assert.False(t, fresh.Rows[0].Checked)
}
