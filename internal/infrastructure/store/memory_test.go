package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory("default")
	ctx := context.Background()

	items := []grocery.GroceryItem{
		{ID: "standard-1", Name: "Apples", Category: grocery.CategoryProduce, Quantity: &grocery.Quantity{Amount: 6, Unit: grocery.UnitPieces}, IsStandard: true},
		{ID: "onetime-a", Name: "Saffron", Category: grocery.CategoryPantry},
	}
	require.NoError(t, m.SaveInHouse(ctx, items))
	assert.Equal(t, items, m.LoadInHouse(ctx))

	shopping := []grocery.GroceryItem{{ID: "imported-b", Name: "Tofu", Category: grocery.CategoryOther}}
	require.NoError(t, m.SaveShopping(ctx, shopping))
	assert.Equal(t, shopping, m.LoadShopping(ctx))

	recipes := []recipe.Recipe{{
		ID:   "recipe-1",
		Name: "Stir Fry",
		Ingredients: []recipe.RecipeIngredient{
			{Name: "2 Carrots", NormalizedName: "carrots"},
		},
	}}
	require.NoError(t, m.SaveRecipes(ctx, recipes))
	assert.Equal(t, recipes, m.LoadRecipes(ctx))
}

func TestMemoryMissingKeysLoadEmpty(t *testing.T) {
	m := NewMemory("default")
	ctx := context.Background()

	assert.Empty(t, m.LoadInHouse(ctx))
	assert.Empty(t, m.LoadShopping(ctx))
	assert.Empty(t, m.LoadRecipes(ctx))
}

func TestMemoryCorruptBlobLoadsEmpty(t *testing.T) {
	m := NewMemory("default")
	m.SetBlob("default", KeyInHouseItems, []byte("{not json"))

	assert.Empty(t, m.LoadInHouse(context.Background()))
}

func TestMemoryUnknownCategoryBlobLoadsEmpty(t *testing.T) {
	m := NewMemory("default")
	m.SetBlob("default", KeyShoppingListItems, []byte(`[{"id":"x","name":"Chips","category":"Snacks"}]`))

	assert.Empty(t, m.LoadShopping(context.Background()))
}

func TestMemorySwitchProfileIsolatesData(t *testing.T) {
	m := NewMemory("default")
	ctx := context.Background()

	items := []grocery.GroceryItem{{ID: "standard-1", Name: "Apples", Category: grocery.CategoryProduce}}
	require.NoError(t, m.SaveInHouse(ctx, items))

	m.SwitchProfile("guest")
	assert.Empty(t, m.LoadInHouse(ctx))

	guestItems := []grocery.GroceryItem{{ID: "onetime-g", Name: "Cocoa", Category: grocery.CategoryOther}}
	require.NoError(t, m.SaveInHouse(ctx, guestItems))

	m.SwitchProfile("default")
	assert.Equal(t, items, m.LoadInHouse(ctx))
}
