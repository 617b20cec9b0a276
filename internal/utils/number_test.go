package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"120", 120, true},
		{"1.2", 1.2, true},
		{"2,5", 2.5, true},
		{"0,500", 0.5, true},
		{"1,200", 1200, true},
		{"1.234,50", 1234.5, true},
		{"1,234.50", 1234.5, true},
		{"1.234.567", 1234567, true},
		{"2\u00a0345,6", 2345.6, true},
		{"(12)", -12, true},
		{"19%", 19, true},
		{"$ 3.000,00", 3000, true},
		{"-4,5", -4.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseNumber(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
