// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Summer Dresses", "summer-dresses"},
		{"  Summer  Dresses  ", "summer-dresses"},
		{"Kids' T-Shirts (2026)", "kids-t-shirts-2026"},
		{"ALL CAPS", "all-caps"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Slugify(tc.name), "Slugify(%q)", tc.name)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("summer-dresses"))
	assert.True(t, IsValidSlug("tees2026"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Summer Dresses"))
	assert.False(t, IsValidSlug("double--dash"))
	assert.False(t, IsValidSlug("-leading"))
}
