package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Matrix", "matrix"},
		{"A Beautiful Mind", "beautiful mind"},
		{"An American Werewolf", "american werewolf"},
		{"Fast & Furious", "fast and furious"},
		{"Léon: The Professional", "leon professional"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"  Extra   Spaces  ", "extra spaces"},
		{"Rocky IV", "rocky 4"},
		{"I Robot", "i robot"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}

func TestTitleEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"The Matrix", "the matrix", true},
		{"THE MATRIX", "The Matrix", true},
		{"Amélie", "AMÉLIE", true},
		{"The Matrix", "The  Matrix", false},
		{"The Matrix", "The Matrix ", false},
		{"The Matrix", "Matrix", false},
		{"", "", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleEqual(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
