package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCourseTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"brackets removed", "[Bestseller] Go Programming", "Go Programming"},
		{"promo words removed", "React Native Updated 2nd Edition", "React Native"},
		{"underscores and spaces", "machine_learning   basics", "machine learning basics"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCourseTitle(tt.title))
		})
	}
}

func TestNormalizeKeyword(t *testing.T) {
	assert.Equal(t, "go basics", NormalizeKeyword("  Go   Basics "))
	assert.Equal(t, "", NormalizeKeyword("   "))
}
