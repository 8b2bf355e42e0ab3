package recipe

import (
	"strings"

	"grocery-manager/internal/core/grocery"

	"grocery-manager/internal/pkg/common"
)

// FindMissing returns the recipe ingredients not yet covered by either list.
// An ingredient is covered when any in-house or shopping list item name,
// lowercased, contains the ingredient's lowercased normalized name. Note the
// containment runs item-name-contains-ingredient here, answering "does
// anything I have already cover X" — the opposite question from
// grocery.IsOwned, and deliberately kept separate from it.
func FindMissing(rec Recipe, inHouse, shopping []grocery.GroceryItem) []RecipeIngredient {
	inHouseLower := lowerNames(inHouse)
	shoppingLower := lowerNames(shopping)

	var missing []RecipeIngredient
	for _, ing := range rec.Ingredients {
		normalized := strings.ToLower(ing.NormalizedName)
		if containsAny(inHouseLower, normalized) || containsAny(shoppingLower, normalized) {
			continue
		}
		missing = append(missing, ing)
	}
	return missing
}

// MissingToItems converts missing ingredients to shopping list items. The
// recipe ingredient carries no category, so Other is used.
func MissingToItems(missing []RecipeIngredient) []grocery.GroceryItem {
	items := make([]grocery.GroceryItem, 0, len(missing))
	for _, ing := range missing {
		items = append(items, grocery.GroceryItem{
			ID:       common.PrefixedID(grocery.PrefixRecipeNeeded),
			Name:     ing.Name,
			Category: grocery.CategoryOther,
		})
	}
	return items
}

func lowerNames(items []grocery.GroceryItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, strings.ToLower(item.Name))
	}
	return names
}

func containsAny(names []string, needle string) bool {
	for _, name := range names {
		if strings.Contains(name, needle) {
			return true
		}
	}
	return false
}
