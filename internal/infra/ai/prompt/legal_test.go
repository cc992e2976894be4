package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_EmbedsDocument(t *testing.T) {
	out := Build("lorem contract ipsum")
	assert.Contains(t, out, "Expert Senior Legal Consultant")
	assert.Contains(t, out, "**Document Text:**")
	assert.True(t, strings.HasSuffix(out, "lorem contract ipsum"))
}

func TestTruncate_UnderBudgetUntouched(t *testing.T) {
	text := strings.Repeat("a", MaxDocumentChars)
	assert.Equal(t, text, Truncate(text))
}

func TestTruncate_OverBudget(t *testing.T) {
	text := strings.Repeat("a", MaxDocumentChars+500)
	got := Truncate(text)
	assert.Len(t, got, MaxDocumentChars)
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", MaxDocumentChars)
	got := Truncate(text)
	assert.Equal(t, text, got, "multibyte text inside the budget must not be cut")
}
