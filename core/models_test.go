package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("glycerin")
	b := IDFromContent("glycerin")
	c := IDFromContent("parfum")

	assert.Equal(t, a, b, "identical content must produce identical IDs")
	assert.NotEqual(t, a, c, "distinct content should produce distinct IDs")
	assert.NotZero(t, a)
}

func TestSourceRoundTrip(t *testing.T) {
	for src, name := range sourceNames {
		parsed, err := ParseSource(name)
		require.NoError(t, err)
		assert.Equal(t, src, parsed)
	}

	_, err := ParseSource("Hearsay")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestSourceJSON(t *testing.T) {
	data, err := json.Marshal(SourceCurated)
	require.NoError(t, err)
	assert.Equal(t, `"Curated"`, string(data))

	var src Source
	require.NoError(t, json.Unmarshal([]byte(`"Scientific Literature"`), &src))
	assert.Equal(t, SourceScientificLiterature, src)

	// Absent/empty source defaults to LLM
	require.NoError(t, json.Unmarshal([]byte(`""`), &src))
	assert.Equal(t, SourceLLM, src)

	assert.Error(t, json.Unmarshal([]byte(`"Rumor"`), &src))
}

func TestIngredientIdentifiers(t *testing.T) {
	ing := &Ingredient{
		Name:    "parfum",
		Aliases: []string{"fragrance", "perfume"},
	}
	assert.Equal(t, []string{"parfum", "fragrance", "perfume"}, ing.Identifiers())

	bare := &Ingredient{Name: "water"}
	assert.Equal(t, []string{"water"}, bare.Identifiers())
}

func TestIngredientRated(t *testing.T) {
	ing := &Ingredient{Name: "water"}
	assert.False(t, ing.Rated())
	ing.HealthRating = 5
	assert.True(t, ing.Rated())
}
