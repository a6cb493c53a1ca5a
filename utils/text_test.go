package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My New Category", "my-new-category"},
		{"  Groceries list  ", "groceries-list"},
		{"Hello, World!", "hello-world"},
		{"snake_case and--dashes", "snake-case-and-dashes"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestNoteFilename(t *testing.T) {
	assert.Equal(t, "groceries-list.txt", NoteFilename("Groceries list"))
	assert.Equal(t, "untitled.txt", NoteFilename("!!!"))
	assert.Equal(t, "untitled.txt", NoteFilename(""))
}
