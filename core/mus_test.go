package core

import (
	"testing"
	"time"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientMUSRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	original := Ingredient{
		Id:                   IDFromContent("parfum"),
		Name:                 "parfum",
		DisplayName:          "Parfum",
		Aliases:              []string{"fragrance", "perfume"},
		Functions:            []string{"masking", "perfuming"},
		HealthRating:         2,
		RatingRationale:      "Common allergen and sensitizer.",
		PotentialSideEffects: []string{"skin irritation", "allergic reaction"},
		Source:               SourceCurated,
		SourceDetails:        "internal review",
		InsertedAt:           now,
		UpdatedAt:            now,
	}

	buf := make([]byte, IngredientMUS.Size(original))
	n := IngredientMUS.Marshal(original, buf)
	require.Equal(t, len(buf), n, "Size and Marshal must agree")

	decoded, m, err := IngredientMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, original, decoded)
}

func TestIngredientMUSEmptyFields(t *testing.T) {
	original := Ingredient{
		Name:        "water",
		DisplayName: "Water",
		Source:      SourceLLM,
		InsertedAt:  time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, IngredientMUS.Size(original))
	IngredientMUS.Marshal(original, buf)

	decoded, _, err := IngredientMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Nil(t, decoded.Aliases)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Source, decoded.Source)
}

func TestUnmarshalStringsNegativeLength(t *testing.T) {
	buf := make([]byte, varint.Int.Size(-1))
	varint.Int.Marshal(-1, buf)

	_, _, err := unmarshalStrings(buf)
	require.ErrorIs(t, err, com.ErrNegativeLength)
}

func TestIDMUSRoundTrip(t *testing.T) {
	id := IDFromContent("water")
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)

	decoded, _, err := IDMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}
