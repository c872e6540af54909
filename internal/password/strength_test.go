package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		pw    string
		score int
		label string
	}{
		{"empty", "", VeryWeak, "very weak"},
		{"short lowercase", "abc", VeryWeak, "very weak"},
		{"long lowercase only", "abcdefgh", Weak, "weak"},
		{"lowercase with digit", "abcdefg1", Fair, "fair"},
		{"mixed case with digit", "Abcdef12", Good, "good"},
		{"long mixed everything", "Abcdefgh1234!@#$", Strong, "strong"},
		{"digits only", "12345678", Fair, "fair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, label := Score(tt.pw)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestScore_NeverExceedsStrong(t *testing.T) {
	score, _ := Score("Extremely-Long-Password-With-Everything-123456789!")
	assert.LessOrEqual(t, score, Strong)
}
