package grocery

import (
	"encoding/json"
	"fmt"
)

// Unit is the measurement unit of an in-house quantity.
type Unit string

const (
	UnitPieces Unit = "pcs"
	UnitGrams  Unit = "g"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == UnitPieces || u == UnitGrams
}

// Quantity is the amount of an item held in-house. Shopping list items carry
// no quantity.
type Quantity struct {
	Amount int  `json:"amount"`
	Unit   Unit `json:"unit"`
}

// Category is a closed enumeration of grocery categories. Only the variants
// below can enter the data model; JSON round-trips through the display label.
type Category int

const (
	CategoryProduce Category = iota
	CategoryDairy
	CategoryMeat
	CategoryFish
	CategoryBakery
	CategoryPantry
	CategoryFrozen
	CategoryBeverages
	CategoryOther
)

// CategoryInfo is the display metadata of a category variant.
type CategoryInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryProduce:   {Label: "Produce", Icon: "🥦", Color: "green"},
	CategoryDairy:     {Label: "Dairy & Eggs", Icon: "🥚", Color: "yellow"},
	CategoryMeat:      {Label: "Meat & Poultry", Icon: "🍗", Color: "red"},
	CategoryFish:      {Label: "Fish & Seafood", Icon: "🐟", Color: "blue"},
	CategoryBakery:    {Label: "Bakery & Bread", Icon: "🍞", Color: "amber"},
	CategoryPantry:    {Label: "Pantry", Icon: "🥫", Color: "orange"},
	CategoryFrozen:    {Label: "Frozen Foods", Icon: "🧊", Color: "cyan"},
	CategoryBeverages: {Label: "Beverages", Icon: "🥤", Color: "purple"},
	CategoryOther:     {Label: "Other", Icon: "🛒", Color: "gray"},
}

var categoryByLabel = func() map[string]Category {
	m := make(map[string]Category, len(categoryInfo))
	for c, info := range categoryInfo {
		m[info.Label] = c
	}
	return m
}()

// Categories returns all category variants in display order.
func Categories() []Category {
	return []Category{
		CategoryProduce,
		CategoryDairy,
		CategoryMeat,
		CategoryFish,
		CategoryBakery,
		CategoryPantry,
		CategoryFrozen,
		CategoryBeverages,
		CategoryOther,
	}
}

// Info returns the display metadata of c.
func (c Category) Info() CategoryInfo {
	return categoryInfo[c]
}

// String returns the display label of c.
func (c Category) String() string {
	return categoryInfo[c].Label
}

// ParseCategory resolves a display label to its category variant.
func ParseCategory(label string) (Category, bool) {
	c, ok := categoryByLabel[label]
	return c, ok
}

// MarshalJSON encodes the category as its display label.
func (c Category) MarshalJSON() ([]byte, error) {
	info, ok := categoryInfo[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return json.Marshal(info.Label)
}

// UnmarshalJSON decodes a display label, rejecting unknown categories.
func (c *Category) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, ok := ParseCategory(label)
	if !ok {
		return fmt.Errorf("unknown category %q", label)
	}
	*c = parsed
	return nil
}

// GroceryItem is a unit tracked in the in-house or shopping list.
type GroceryItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	Quantity   *Quantity `json:"quantity,omitempty"`
	IsStandard bool      `json:"isStandard"`
}

// ImportedItem is a name/category pair confirmed from an import session,
// promoted to a GroceryItem by the reconciler.
type ImportedItem struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Identifier provenance prefixes. Items keep the prefix of the flow that
// created them; the suffix is a random UUID (see common.PrefixedID).
const (
	PrefixStandard     = "standard"
	PrefixOneTime      = "onetime"
	PrefixImported     = "imported"
	PrefixRecipeNeeded = "recipe-needed"
)
