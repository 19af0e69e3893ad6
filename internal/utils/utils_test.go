package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.Regexp(t, `^ORD-\d{14}-\d{3}$`, GenerateOrderNumber())
		}
	})

	t.Run("SuffixRange", func(t *testing.T) {
		// Suffix never starts with 0: the random part is 100..999.
		for i := 0; i < 50; i++ {
			n := GenerateOrderNumber()
			assert.NotEqual(t, byte('0'), n[len(n)-3])
		}
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Exact", 10.25, 10.25},
		{"RoundUp", 10.257, 10.26},
		{"RoundDown", 10.254, 10.25},
		{"FloatNoise", 0.1 + 0.2, 0.3},
		{"Zero", 0, 0},
		{"Negative", -2.346, -2.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}
