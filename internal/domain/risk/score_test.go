package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EmptyInput(t *testing.T) {
	a := Score("")
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, LevelLow, a.Level)
	assert.Empty(t, a.Flags)
}

func TestScore_KnownCombination(t *testing.T) {
	a := Score("The contractor shall indemnify the client. Disputes go to arbitration.")
	assert.Equal(t, 40, a.Score)
	assert.Equal(t, LevelMedium, a.Level)
	assert.Equal(t, []string{"Indemnify", "Arbitration"}, a.Flags)
}

func TestScore_HighRiskCombination(t *testing.T) {
	a := Score("Provider has unlimited liability. Automatic renewal applies. Termination without cause is permitted.")
	assert.Equal(t, 85, a.Score)
	assert.Equal(t, LevelHigh, a.Level)
}

func TestScore_LevelBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		score int
		level Level
	}{
		{"below medium", "you must indemnify us", 25, LevelLow},
		{"exactly medium", "indemnify; arbitration", 40, LevelMedium},
		{"just below high", "indemnify, liquidated damages, arbitration", 65, LevelMedium},
		{"exactly high", "unlimited liability, indemnify, arbitration", 70, LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Score(tt.text)
			assert.Equal(t, tt.score, a.Score)
			assert.Equal(t, tt.level, a.Level)
		})
	}
}

func TestScore_ClampedAt100(t *testing.T) {
	text := "termination without cause termination for convenience indemnify indemnification unlimited liability liquidated damages automatic renewal"
	a := Score(text)
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, LevelHigh, a.Level)
}

func TestScore_Monotonicity(t *testing.T) {
	base := Score("arbitration")
	more := Score("arbitration and a penalty clause")

	assert.GreaterOrEqual(t, more.Score, base.Score)
	for _, f := range base.Flags {
		assert.Contains(t, more.Flags, f)
	}
}

func TestScore_MediumFlagsCapped(t *testing.T) {
	// all eight medium terms match; only six flag slots exist
	text := "arbitration exclusive jurisdiction non-compete exclusivity penalty late payment fee confidentiality work for hire"
	a := Score(text)
	assert.Len(t, a.Flags, 6)

	// the cap never suppresses scoring
	assert.Equal(t, 100, a.Score) // 110 clamped
}

func TestScore_HighFlagsNeverCapped(t *testing.T) {
	text := strings.Join([]string{
		"termination without cause", "termination for convenience", "indemnify",
		"indemnification", "unlimited liability", "liquidated damages",
		"automatic renewal", "auto-renewal",
	}, " ")
	a := Score(text)
	assert.Len(t, a.Flags, 8)
}

func TestScore_SentinelFlag(t *testing.T) {
	a := Score("This is a perfectly ordinary letter about the weather.")
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, LevelLow, a.Level)
	assert.Equal(t, []string{"Standard Terms"}, a.Flags)
}

func TestScore_FlagsTitleCased(t *testing.T) {
	a := Score("a strict non-compete applies")
	require.Len(t, a.Flags, 1)
	assert.Equal(t, "Non-Compete", a.Flags[0])
}

func TestScore_CaseInsensitive(t *testing.T) {
	a := Score("INDEMNIFY")
	assert.Equal(t, 25, a.Score)
	assert.Equal(t, []string{"Indemnify"}, a.Flags)
}

func TestLowImpactTableReserved(t *testing.T) {
	// declared but not scored yet
	a := Score("upon written notice within 30 days using reasonable efforts")
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, []string{"Standard Terms"}, a.Flags)
	assert.NotEmpty(t, lowImpactTerms)
}
