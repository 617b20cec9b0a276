package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"procure-service/internal/procure/model"
)

func TestDictionary_ResolveNormalized(t *testing.T) {
	d := NewDictionary([]model.DictionaryEntry{
		{Description: "CAMISETA BASICA", Code: "G7", Name: "CAMISETA BASICA M/C"},
	}, true)

	g, ok := d.Resolve("camiseta   básica")
	assert.True(t, ok)
	assert.Equal(t, model.Garment{Code: "G7", Name: "CAMISETA BASICA M/C"}, g)

	_, ok = d.Resolve("camiseta basica polo")
	assert.False(t, ok)
}

func TestDictionary_LastEntryWins(t *testing.T) {
	d := NewDictionary([]model.DictionaryEntry{
		{Description: "Polo Azul", Code: "G1", Name: "POLO"},
		{Description: "POLO  AZUL", Code: "G2", Name: "POLO AZUL"},
		{Description: "  ", Code: "G9", Name: "BLANK"},
	}, true)

	g, ok := d.Resolve("polo azul")
	assert.True(t, ok)
	assert.Equal(t, "G2", g.Code)
	assert.Equal(t, 1, d.Len())
}

func TestDictionary_DisabledOrNil(t *testing.T) {
	entries := []model.DictionaryEntry{{Description: "POLO", Code: "G1", Name: "POLO"}}

	d := NewDictionary(entries, false)
	_, ok := d.Resolve("POLO")
	assert.False(t, ok)
	assert.False(t, d.Enabled())

	var none *Dictionary
	_, ok = none.Resolve("POLO")
	assert.False(t, ok)
	assert.Equal(t, 0, none.Len())
}
