package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	in := "INGREDIENTS:   Aqua,\tGlycerin\n\n  Parfum   \n"
	assert.Equal(t, "INGREDIENTS: Aqua, Glycerin\nParfum", collapseWhitespace(in))
	assert.Equal(t, "", collapseWhitespace("  \n \t \n"))
}
