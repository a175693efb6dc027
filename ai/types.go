package ai

import "fmt"

// Category selects the product domain the knowledge model should reason in.
type Category string

const (
	// CategoryCosmetic covers skincare, haircare and other personal care labels.
	CategoryCosmetic Category = "cosmetic"
	// CategoryFood covers edible product labels.
	CategoryFood Category = "food"
)

// Valid reports whether the category is one of the supported domains.
func (c Category) Valid() bool {
	return c == CategoryCosmetic || c == CategoryFood
}

// ParseCategory converts a raw selector into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// AnalyzedIngredient is a single entry of the knowledge model's response.
// Field names match the JSON schema the prompt instructs the model to emit.
type AnalyzedIngredient struct {
	IngredientName       string   `json:"ingredient_name"`
	Aliases              []string `json:"aliases"`
	Functions            []string `json:"functions"`
	HealthRating         int      `json:"health_rating"`
	RatingRationale      string   `json:"rating_rationale"`
	PotentialSideEffects []string `json:"potential_side_effects"`
	Source               string   `json:"source"`
	SourceDetails        string   `json:"source_details"`
}

// Analysis is the top-level structure of the knowledge model's response.
type Analysis struct {
	Ingredients []AnalyzedIngredient `json:"ingredients"`
}
