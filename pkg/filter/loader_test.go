package filter_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/glesirok/uridispatch/pkg/filter"
	"github.com/glesirok/uridispatch/pkg/pattern"
	"github.com/rohanthewiz/assert"
)

func TestLoadFromFile(t *testing.T) {
	table, err := filter.LoadFromFile("testdata/filters.yaml")
	assert.Nil(t, err)
	assert.Equal(t, len(table), 5)

	desc, ok := table.Lookup("resize")
	assert.True(t, ok)
	assert.Equal(t, desc.Title, "Resize")
	assert.Equal(t, desc.Pattern, "{width|integer}x{height|integer}")

	_, ok = table.Lookup("blur")
	assert.False(t, ok)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := filter.LoadFromFile("testdata/nope.yaml")
	assert.True(t, err != nil)
	assert.True(t, strings.Contains(err.Error(), "read file"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "filters: {}", "no filters defined"},
		{"bad yaml", "filters: [", "unmarshal yaml"},
		{"no title", "filters:\n  resize:\n    pattern: \"{w|int}\"", "title is required"},
		{"no pattern", "filters:\n  resize:\n    title: Resize", "pattern is required"},
		{"slash token", "filters:\n  a/b:\n    title: A\n    pattern: \"{w|int}\"", "token"},
		{"bad variable", "filters:\n  resize:\n    title: Resize\n    pattern: \"{1w|int}\"", "variable name"},
	}

	for _, c := range cases {
		_, err := filter.Load([]byte(c.doc))
		assert.True(t, err != nil)
		assert.True(t, strings.Contains(err.Error(), c.want))
	}
}

func TestValidateMalformedPattern(t *testing.T) {
	err := filter.Validate("resize", filter.Descriptor{Title: "Resize", Pattern: "{width}x{height}"})
	assert.True(t, errors.Is(err, filter.ErrInvalidDescriptor))
	assert.True(t, errors.Is(err, pattern.ErrMalformedPattern))
}
