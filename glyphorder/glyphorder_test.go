package glyphorder

import (
	"testing"

	"github.com/npillmayer/otfeat/otgraph"
	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	ix := New([]string{".notdef", "a", "b", "a"}, nil)
	assert.Equal(t, 0, ix.ID(".notdef"))
	assert.Equal(t, 1, ix.ID("a"), "first position wins for duplicate names")
	assert.Equal(t, Unknown, ix.ID("zzz"))
	assert.True(t, ix.Less("b", "zzz"))
	assert.True(t, ix.Has("b"))
	assert.False(t, ix.Has("c"))
	assert.Equal(t, 4, ix.Len())
}

func TestInverseCmap(t *testing.T) {
	f := &otgraph.Font{
		GlyphOrder: []string{".notdef", "A", "Omega"},
		CMap:       map[rune]string{0x2126: "Omega", 'A': "A", 0x03A9: "Omega"},
	}
	ix := FromFont(f)
	assert.Equal(t, []rune{0x03A9, 0x2126}, ix.Codepoints("Omega"))
	assert.True(t, ix.HasUnicode("A"))
	assert.False(t, ix.HasUnicode(".notdef"))
	g, ok := ix.GlyphFor('A')
	assert.True(t, ok)
	assert.Equal(t, "A", g)
}

func TestNilIndex(t *testing.T) {
	var ix *Index
	assert.Equal(t, Unknown, ix.ID("a"))
	assert.Equal(t, 0, ix.Len())
	assert.Nil(t, ix.Codepoints("a"))
	for range ix.Range() {
		t.Fatal("nil index must not yield")
	}
}
