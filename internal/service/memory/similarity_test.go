package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "I feel anxious before deadlines", b: "I feel anxious before deadlines", expected: 1},
		{name: "case and punctuation ignored", a: "Anxious, before DEADLINES!", b: "anxious before deadlines", expected: 1},
		{name: "partial overlap", a: "feels anxious about work", b: "feels calm about work", expected: 0.6},
		{name: "disjoint", a: "enjoys morning runs", b: "worries about money", expected: 0},
		{name: "only short tokens", a: "I am ok", b: "I am ok", expected: 0},
		{name: "both empty", a: "", b: "", expected: 0},
		{name: "one empty", a: "values family time", b: "", expected: 0},
		{name: "duplicate words collapse", a: "work work work stress", b: "work stress", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "Recurrent anxiety before deadlines at work"
	b := "Anxiety about deadlines and sleep"
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}
