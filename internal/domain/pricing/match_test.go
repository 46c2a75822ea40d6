package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicMatcher(t *testing.T) {
	m := HeuristicMatcher{}
	pool := []string{"MDF 18mm", "Triplex 15mm", "Pintura blanca", "Tornillo 4x40"}

	tests := []struct {
		name      string
		candidate string
		wantIdx   int
		wantOK    bool
	}{
		{"exact case-insensitive", "mdf 18mm", 0, true},
		{"substring candidate in entry", "Triplex", 1, true},
		{"substring entry in candidate", "Pintura blanca mate interior", 2, true},
		{"token overlap with spacing", "mdf 18 mm", 0, true},
		{"token overlap two tokens", "Tornillo cabeza plana 4x40", 3, true},
		{"no match", "Bisagra cierre lento", 0, false},
		{"empty candidate", "", 0, false},
		{"too short for substring", "xy", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := m.Match(tt.candidate, pool)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestHeuristicMatcher_FirstMatchWins(t *testing.T) {
	m := HeuristicMatcher{}
	pool := []string{"Pintura blanca", "Pintura blanca mate"}

	idx, ok := m.Match("pintura blanca", pool)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}
