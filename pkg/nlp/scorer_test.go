package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, Score("weather", "weather"))
	assert.Equal(t, 1.0, Score("  Weather ", "weather"))
	assert.Equal(t, 1.0, Score("मौसम", "मौसम"))
}

func TestScore_KeywordContainedInInput(t *testing.T) {
	assert.Equal(t, 0.9, Score("show weather now", "weather"))
	assert.Equal(t, 0.9, Score("compare prices in ludhiana", "compare prices"))
}

func TestScore_InputContainedInKeyword(t *testing.T) {
	assert.Equal(t, 0.7, Score("weather", "weather forecast"))
}

func TestScore_WordOverlap(t *testing.T) {
	// one of two words overlaps, scaled by 0.8
	assert.InDelta(t, 0.4, Score("show prices", "apmc prices"), 1e-9)
}

func TestScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Score("", "weather"))
	assert.Equal(t, 0.0, Score("weather", ""))
	assert.Equal(t, 0.0, Score("   ", "weather"))
}

func TestScore_NoOverlap(t *testing.T) {
	assert.Equal(t, 0.0, Score("xyzzy", "weather"))
}

func TestScoreAdvanced_WildcardMatch(t *testing.T) {
	assert.Equal(t, WildcardMatchScore, ScoreAdvanced("price of wheat in punjab", "price of .* in"))
	assert.Equal(t, WildcardMatchScore, ScoreAdvanced("and in haryana", "and in .*"))
}

func TestScoreAdvanced_WildcardMiss(t *testing.T) {
	// a non-matching wildcard pattern falls back to literal scoring
	assert.Equal(t, 0.0, ScoreAdvanced("hello there", "price of .* in"))
}

func TestScoreAdvanced_LiteralPattern(t *testing.T) {
	assert.Equal(t, 1.0, ScoreAdvanced("show prices", "show prices"))
	assert.Equal(t, 0.9, ScoreAdvanced("please show prices now", "show prices"))
}
