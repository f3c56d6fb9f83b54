package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{22, "22"},
		{310.5, "310.5"},
		{7.25, "7.25"},
		{1200, "1200"},
		{-3, "-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Number(tt.input), "Number(%v)", tt.input)
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		decimals int
		expected string
	}{
		{name: "Whole number", input: 450, decimals: 1, expected: "450.0"},
		{name: "Round down", input: 1.24, decimals: 1, expected: "1.2"},
		{name: "Exact half rounds up", input: 1.25, decimals: 1, expected: "1.3"},
		{name: "Exact half rounds up from even", input: 0.5, decimals: 0, expected: "1"},
		{name: "Negative half", input: -2.5, decimals: 0, expected: "-3"},
		{name: "Negative rounding to zero", input: -0.01, decimals: 1, expected: "0.0"},
		{name: "Near half is not a half", input: 1.05, decimals: 1, expected: "1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fixed(tt.input, tt.decimals))
		})
	}
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "450.0", Thousands(450000))
	assert.Equal(t, "1250.0", Thousands(1250000))
	assert.Equal(t, "312.5", Thousands(312499.99))
	assert.Equal(t, "0.0", Thousands(0))
}
