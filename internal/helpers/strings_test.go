package helpers_test

import (
	"testing"
	"unicode/utf8"

	"github.com/isometry/folio/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Length   int
		Expected string
	}{
		{Name: "short", Input: "/about", Length: 10, Expected: "/about"},
		{Name: "exact", Input: "/about", Length: 6, Expected: "/about"},
		{Name: "long", Input: "/experience", Length: 8, Expected: "/expe..."},
		{Name: "tiny_limit", Input: "/experience", Length: 2, Expected: "/e"},
		{Name: "multibyte", Input: "/caf\u00e9-menu", Length: 8, Expected: "/caf..."},
		{Name: "multibyte_tiny_limit", Input: "/\u00e9t\u00e9", Length: 2, Expected: "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			out := helpers.Truncate(tc.Input, tc.Length)
			assert.Equal(t, tc.Expected, out)
			assert.True(t, utf8.ValidString(out))
		})
	}
}
