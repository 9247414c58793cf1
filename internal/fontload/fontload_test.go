package fontload

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.fonts")
	defer teardown()
	//
	sf, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go Regular", sf.Fontname)
	//
	f := sf.Graph()
	require.Equal(t, sf.SFNT.NumGlyphs(), f.NumGlyphs())
	seen := make(map[string]bool, f.NumGlyphs())
	for _, name := range f.GlyphOrder {
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate glyph name %q", name)
		seen[name] = true
	}
	a, ok := f.CMap['A']
	require.True(t, ok, "expected 'A' in cmap")
	assert.True(t, seen[a], "cmap target %q must be in glyph order", a)
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otfeat.fonts")
	defer teardown()
	//
	_, err := ParseOpenTypeFont([]byte("not a font"))
	assert.Error(t, err)
}
