package openai

import (
	"encoding/json"
	"testing"

	"github.com/labelens/labelens/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare json",
			input: `{"ingredients": []}`,
			want:  `{"ingredients": []}`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"ingredients\": []}\n",
			want:  `{"ingredients": []}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"ingredients\": []}\n```",
			want:  `{"ingredients": []}`,
		},
		{
			name:  "anonymous fence",
			input: "```\n{\"ingredients\": []}\n```",
			want:  `{"ingredients": []}`,
		},
		{
			name:  "fence with preamble",
			input: "Here is the result:\n```json\n{\"ingredients\": []}\n```\nLet me know if you need more.",
			want:  `{"ingredients": []}`,
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"ingredients\": []}",
			want:  `{"ingredients": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	broken := `{"ingredients": [{ingredient_name": "water", health_rating": 5}]}`
	repaired := repairJSON(broken)

	var payload ai.Analysis
	require.NoError(t, json.Unmarshal([]byte(repaired), &payload))
	require.Len(t, payload.Ingredients, 1)
	assert.Equal(t, "water", payload.Ingredients[0].IngredientName)
	assert.Equal(t, 5, payload.Ingredients[0].HealthRating)
}

func TestRepairJSONLeavesValidAlone(t *testing.T) {
	valid := `{"ingredients": [{"ingredient_name": "water"}]}`
	assert.Equal(t, valid, repairJSON(valid))
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(ai.CategoryCosmetic)
	assert.Contains(t, prompt, "cosmetic")
	assert.Contains(t, prompt, `"ingredients"`)
	assert.Contains(t, prompt, "health_rating")
}

func TestBuildUserPrompt(t *testing.T) {
	assert.Equal(t, "water, glycerin", buildUserPrompt([]string{"water", "glycerin"}))
}
