package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil stays nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty stays empty",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "broker list with padding and a repeat",
			input:    []string{" localhost:9092", "localhost:9093 ", "localhost:9092"},
			expected: []string{"localhost:9092", "localhost:9093"},
		},
		{
			name:     "trailing comma artifacts are dropped",
			input:    []string{"localhost:9092", "", "   "},
			expected: []string{"localhost:9092"},
		},
		{
			name:     "first occurrence wins the position",
			input:    []string{"b", "a", "b", "c", "a"},
			expected: []string{"b", "a", "c"},
		},
		{
			name:     "case is significant",
			input:    []string{"Host", "host"},
			expected: []string{"Host", "host"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
