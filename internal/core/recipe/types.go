package recipe

import "grocery-manager/internal/core/grocery"

// RecipeIngredient is one ingredient line of a recipe. Name is the full
// display line including quantity ("2 cups Flour"); NormalizedName is the
// lowercase-comparable base term used for matching ("flour").
type RecipeIngredient struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
}

// Recipe is a saved creation. Ingredient order is preserved from generation
// and not deduplicated. Instructions are a single markdown block, opaque to
// the core logic.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions string             `json:"instructions"`
}

// Draft is a generated recipe that has not been saved yet; it carries no id.
type Draft struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions string             `json:"instructions"`
}

// NormalizedItem is a transient grocery item produced by the import pipeline,
// promoted to a grocery.GroceryItem on confirmation.
type NormalizedItem struct {
	Name           string           `json:"name"`
	Category       grocery.Category `json:"category"`
	NormalizedName string           `json:"normalizedName"`
}

// Strictness controls whether the text-generation service may introduce
// ingredients beyond the selected set.
type Strictness string

const (
	StrictnessLoose  Strictness = "loose"
	StrictnessStrict Strictness = "strict"
)

// GenerateOptions are the recognized recipe generation constraints. Each value
// comes from a fixed enumeration (see Validate).
type GenerateOptions struct {
	Time       string     `json:"time"`
	Method     string     `json:"method"`
	Diet       string     `json:"diet"`
	Calories   string     `json:"calories"`
	Protein    string     `json:"protein"`
	Strictness Strictness `json:"strictness"`
}

// Option enumerations offered by the pickers.
var (
	TimeOptions    = []string{"15", "30", "45", "60"}
	MethodOptions  = []string{"Any", "Air Fryer", "Baking", "Boiling", "Frying"}
	DietOptions    = []string{"Anything", "Vegetarian", "Meat", "Fish"}
	CalorieOptions = []string{"Normal", "Low Calorie", "High Calorie"}
	ProteinOptions = []string{"Normal", "Low Protein", "High Protein"}
)

// DefaultOptions returns the preselected option defaults.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{
		Time:       "30",
		Method:     "Any",
		Diet:       "Anything",
		Calories:   "Normal",
		Protein:    "Normal",
		Strictness: StrictnessLoose,
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Normalize fills zero-valued fields with the defaults.
func (o GenerateOptions) Normalize() GenerateOptions {
	defaults := DefaultOptions()
	if o.Time == "" {
		o.Time = defaults.Time
	}
	if o.Method == "" {
		o.Method = defaults.Method
	}
	if o.Diet == "" {
		o.Diet = defaults.Diet
	}
	if o.Calories == "" {
		o.Calories = defaults.Calories
	}
	if o.Protein == "" {
		o.Protein = defaults.Protein
	}
	if o.Strictness == "" {
		o.Strictness = defaults.Strictness
	}
	return o
}

// Validate checks every option against its enumeration. Returns the offending
// field name, or "" when valid.
func (o GenerateOptions) Validate() string {
	switch {
	case !contains(TimeOptions, o.Time):
		return "time"
	case !contains(MethodOptions, o.Method):
		return "method"
	case !contains(DietOptions, o.Diet):
		return "diet"
	case !contains(CalorieOptions, o.Calories):
		return "calories"
	case !contains(ProteinOptions, o.Protein):
		return "protein"
	case o.Strictness != StrictnessLoose && o.Strictness != StrictnessStrict:
		return "strictness"
	}
	return ""
}
