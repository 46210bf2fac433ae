package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		n          int
		lo, hi     int
		empty      bool
	}{
		{"full range", 0, 4, 5, 0, 4, false},
		{"end past length clamps", 0, 100, 5, 0, 4, false},
		{"negative end wraps", 0, -1, 5, 0, 4, false},
		{"negative start wraps", -2, -1, 5, 3, 4, false},
		{"start past negative range clamps to front", -10, 2, 5, 0, 2, false},
		{"end before start", 3, 1, 5, 0, 0, true},
		{"end wraps before front", 0, -10, 5, 0, 0, true},
		{"zero length", 0, -1, 0, 0, 0, true},
		{"start past length", 10, 20, 5, 0, 0, true},
		{"single element", 2, 2, 5, 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, empty := normalizeRange(tt.start, tt.end, tt.n)
			assert.Equal(t, tt.empty, empty)
			if !empty {
				assert.Equal(t, tt.lo, lo)
				assert.Equal(t, tt.hi, hi)
			}
		})
	}
}
