package grocery

import "fmt"

// StandardItems returns the seed catalog: the fixed set of staples offered by
// the UI pickers. Catalog entries are the only items with IsStandard set, and
// the only ones that round-trip back to the in-house list with a default
// quantity. The catalog itself is not mutable state.
func StandardItems() []GroceryItem {
	items := []GroceryItem{
		// Produce
		{ID: standardID(1), Name: "Apples", Category: CategoryProduce},
		{ID: standardID(5), Name: "Bananas", Category: CategoryProduce},
		{ID: standardID(6), Name: "Carrots", Category: CategoryProduce},
		{ID: standardID(7), Name: "Onions", Category: CategoryProduce},
		{ID: standardID(8), Name: "Lettuce", Category: CategoryProduce},
		{ID: standardID(9), Name: "Tomatoes", Category: CategoryProduce},

		// Dairy
		{ID: standardID(3), Name: "Milk", Category: CategoryDairy},
		{ID: standardID(10), Name: "Eggs", Category: CategoryDairy},
		{ID: standardID(11), Name: "Cheese", Category: CategoryDairy},
		{ID: standardID(12), Name: "Yogurt", Category: CategoryDairy},
		{ID: standardID(13), Name: "Butter", Category: CategoryDairy},

		// Meat
		{ID: standardID(4), Name: "Chicken Breast", Category: CategoryMeat},
		{ID: standardID(14), Name: "Ground Beef", Category: CategoryMeat},
		{ID: standardID(15), Name: "Bacon", Category: CategoryMeat},

		// Fish
		{ID: standardID(27), Name: "Salmon", Category: CategoryFish},
		{ID: standardID(28), Name: "Tuna", Category: CategoryFish},

		// Bakery
		{ID: standardID(2), Name: "Bread", Category: CategoryBakery},
		{ID: standardID(16), Name: "Baguette", Category: CategoryBakery},

		// Pantry
		{ID: standardID(17), Name: "Pasta", Category: CategoryPantry},
		{ID: standardID(18), Name: "Rice", Category: CategoryPantry},
		{ID: standardID(19), Name: "Flour", Category: CategoryPantry},
		{ID: standardID(20), Name: "Sugar", Category: CategoryPantry},
		{ID: standardID(21), Name: "Olive Oil", Category: CategoryPantry},
		{ID: standardID(22), Name: "Cereal", Category: CategoryPantry},

		// Frozen
		{ID: standardID(23), Name: "Frozen Pizza", Category: CategoryFrozen},
		{ID: standardID(24), Name: "Ice Cream", Category: CategoryFrozen},

		// Beverages
		{ID: standardID(25), Name: "Coffee", Category: CategoryBeverages},
		{ID: standardID(26), Name: "Orange Juice", Category: CategoryBeverages},
	}

	for i := range items {
		items[i].IsStandard = true
	}
	return items
}

func standardID(n int) string {
	return fmt.Sprintf("%s-%d", PrefixStandard, n)
}
