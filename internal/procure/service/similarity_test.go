package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 1.0, TokenSortRatio("CAMISA POLO", "POLO CAMISA"))
	assert.Equal(t, 1.0, TokenSortRatio("SHIRT", "SHIRT"))
	assert.InDelta(t, 10.0/11.0, TokenSortRatio("SHIRT", "SHIRTS"), 1e-12)
	assert.InDelta(t, 0.75, TokenSortRatio("ABCD", "ACBD"), 1e-12)
	assert.Equal(t, 1.0, TokenSortRatio("", ""))
	assert.Equal(t, 0.0, TokenSortRatio("ABC", ""))
	assert.Equal(t, 0.0, TokenSortRatio("ABC", "XYZ"))
}

func TestTokenSortDamerau(t *testing.T) {
	assert.Equal(t, 1, damerauLevenshtein("CA", "AC"))
	assert.Equal(t, 3, damerauLevenshtein("KITTEN", "SITTING"))
	assert.InDelta(t, 0.8, TokenSortDamerau("SHIRT", "SHRIT"), 1e-12)
	assert.Equal(t, 1.0, TokenSortDamerau("POLO CAMISA", "CAMISA POLO"))
	assert.Equal(t, 0.0, TokenSortDamerau("", "POLO"))
}

func TestScorerByName(t *testing.T) {
	assert.InDelta(t, 0.8, ScorerByName(ScorerDamerau)("SHIRT", "SHRIT"), 1e-12)
	assert.InDelta(t, 0.8, ScorerByName("unknown")("SHIRT", "SHRIT"), 1e-12)
	assert.InDelta(t, 0.8, ScorerByName(ScorerTokenSort)("SHIRT", "SHRIT"), 1e-12)
}
