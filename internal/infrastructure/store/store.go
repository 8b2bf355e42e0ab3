// Package store implements the persistent key-value repository behind the
// grocery lists and saved recipes. Three keys are used per profile:
// inHouseItems, shoppingListItems and recipes, each holding the corresponding
// ordered sequence as a JSON blob. Read failures degrade to an empty sequence
// and are logged, never surfaced.
package store

import (
	"context"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
)

// Storage keys, one per persisted sequence.
const (
	KeyInHouseItems      = "inHouseItems"
	KeyShoppingListItems = "shoppingListItems"
	KeyRecipes           = "recipes"
)

// Repository is the typed load/save surface over the key-value store. It is
// constructed once at process start; callers that need another account call
// SwitchProfile and reload.
type Repository interface {
	LoadInHouse(ctx context.Context) []grocery.GroceryItem
	LoadShopping(ctx context.Context) []grocery.GroceryItem
	LoadRecipes(ctx context.Context) []recipe.Recipe

	SaveInHouse(ctx context.Context, items []grocery.GroceryItem) error
	SaveShopping(ctx context.Context, items []grocery.GroceryItem) error
	SaveRecipes(ctx context.Context, recipes []recipe.Recipe) error

	// SwitchProfile repoints all three keys at another profile. Subsequent
	// loads and saves address the new profile's data.
	SwitchProfile(profile string)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
