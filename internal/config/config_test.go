package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "FUZZY_THRESHOLD", "FUZZY_ENABLED", "TAX_RATE", "ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)

	opt := cfg.PipelineOptions()
	assert.Equal(t, 0.65, opt.Threshold)
	assert.True(t, opt.EnableFuzzy)
	assert.Equal(t, 0.19, opt.TaxRate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FUZZY_THRESHOLD", "0.8")
	t.Setenv("FUZZY_ENABLED", "false")
	t.Setenv("ALLOW_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("MATCH_WORKERS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 0.8, cfg.FuzzyThreshold)
	assert.False(t, cfg.FuzzyEnabled)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.Positive(t, cfg.MatchWorkers)
}
