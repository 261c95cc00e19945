package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Poultry", "poultry"},
		{"spaces to hyphens", "Fresh Goat Meat", "fresh-goat-meat"},
		{"collapses repeated separators", "West  African__Dwarf--Goat", "west-african-dwarf-goat"},
		{"strips punctuation", "Layer Hens (Point of Lay)!", "layer-hens-point-of-lay"},
		{"trims surrounding whitespace", "  Broiler Chicken  ", "broiler-chicken"},
		{"only punctuation yields empty", "!!!", ""},
		{"keeps digits", "Size 2 Crate", "size-2-crate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))

	value := NewNullString("goat")
	assert.NotNil(t, value)
	assert.Equal(t, "goat", *value)
}
