package ai

import (
	"fmt"
	"strings"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
)

const strictInstructions = `You **must only** use the provided ingredients. You can supplement with a few common pantry staples if necessary (like oil, salt, pepper, spices). Do not suggest buying any other primary ingredients.`

const looseInstructions = `You can supplement with a few common pantry staples if necessary (like oil, salt, pepper, spices). You may also suggest 1-2 additional ingredients that would complement the dish, marking them clearly in the ingredients list as "(optional purchase)".`

func recipePrompt(ingredients []string, opts recipe.GenerateOptions) string {
	instructions := looseInstructions
	if opts.Strictness == recipe.StrictnessStrict {
		instructions = strictInstructions
	}

	return fmt.Sprintf(`You are a creative and helpful chef. Generate a recipe based on the following criteria and return it as a JSON object.

**Ingredients to use:** %s
%s

**Constraints:**
- **Cooking Time:** Approximately %s minutes.
- **Cooking Method:** Primarily using %s.
- **Dietary Preference:** %s.
- **Calorie Goal:** %s.
- **Protein Goal:** %s.

Return only a JSON object with this shape:
{"name": "A creative and appealing name for the dish.", "description": "A brief, enticing summary of the dish.", "ingredients": [{"name": "The full ingredient line, including quantity (e.g., '2 cups flour').", "normalizedName": "The simple, base name of the ingredient for searching (e.g., 'flour')."}], "instructions": "Step-by-step cooking instructions, formatted as a single Markdown string."}
All fields are required. Do not wrap the JSON in markdown fences or prose.`,
		strings.Join(ingredients, ", "),
		instructions,
		opts.Time,
		opts.Method,
		opts.Diet,
		opts.Calories,
		opts.Protein,
	)
}

func shoppingListPrompt(recipeText string, servings int) string {
	labels := make([]string, 0, len(grocery.Categories()))
	for _, c := range grocery.Categories() {
		labels = append(labels, c.String())
	}

	return fmt.Sprintf(`Parse the following recipe text for %d people. Extract all ingredients and their quantities, adjusting them for the specified number of servings.
For each ingredient, determine its most appropriate category from the list: %s.
Also provide a simple, normalized name for each ingredient (e.g., for "2 tbsp chopped parsley", the normalized name would be "parsley").
Return only a JSON array of objects of the shape {"name": "The name of the ingredient, including quantity and preparation (e.g., '1 cup flour, sifted').", "category": "The grocery category for the ingredient.", "normalizedName": "The simple, base name of the ingredient for searching (e.g., 'flour')."}.
Do not wrap the JSON in markdown fences or prose.

Recipe:
---
%s
---`,
		servings,
		strings.Join(labels, ", "),
		recipeText,
	)
}
