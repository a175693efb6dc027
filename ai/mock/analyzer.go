package mock

import (
	"context"

	"github.com/labelens/labelens/ai"
)

// MockAnalyzer is a test double for ai.IngredientAnalyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeIngredientsFunc is called by AnalyzeIngredients if set.
	// If nil, a neutral entry is synthesized per term.
	AnalyzeIngredientsFunc func(ctx context.Context, terms []string, category ai.Category) (*ai.Analysis, error)

	callCount int
	lastTerms []string
}

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// AnalyzeIngredients returns a synthetic analysis with one entry per term.
// Default behavior: every term gets health rating 3 and no aliases.
func (m *MockAnalyzer) AnalyzeIngredients(ctx context.Context, terms []string, category ai.Category) (*ai.Analysis, error) {
	m.callCount++
	m.lastTerms = append([]string(nil), terms...)

	if m.AnalyzeIngredientsFunc != nil {
		return m.AnalyzeIngredientsFunc(ctx, terms, category)
	}

	ingredients := make([]ai.AnalyzedIngredient, 0, len(terms))
	for _, term := range terms {
		ingredients = append(ingredients, ai.AnalyzedIngredient{
			IngredientName:       term,
			Aliases:              []string{},
			Functions:            []string{},
			HealthRating:         3,
			RatingRationale:      "mock assessment",
			PotentialSideEffects: []string{},
			Source:               "LLM",
		})
	}
	return &ai.Analysis{Ingredients: ingredients}, nil
}

// CallCount returns the number of times AnalyzeIngredients was called.
func (m *MockAnalyzer) CallCount() int {
	return m.callCount
}

// LastTerms returns the term batch from the most recent call.
func (m *MockAnalyzer) LastTerms() []string {
	return m.lastTerms
}

// Reset clears the call count and custom functions.
func (m *MockAnalyzer) Reset() {
	m.callCount = 0
	m.lastTerms = nil
	m.AnalyzeIngredientsFunc = nil
}
