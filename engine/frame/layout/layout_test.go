package layout

import (
	"testing"

	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyph(ch rune, w int) *glyphing.Glyph {
	return &glyphing.Glyph{
		Spec:   glyphing.NewFontGlyphSpec(ch, "test", 10),
		Width:  w,
		Height: 10,
		YMax:   8,
		YMin:   -2,
	}
}

// a line "abc" with glyphs of width 10 at x = 0, 10, 20 on baseline 8
func line() *HorizontalLayout {
	hl := NewHorizontalLayout(3)
	for i, ch := range "abc" {
		hl.Add(GlyphPlacement{Glyph: glyph(ch, 10), X: 10 * i, Y: 8, Index: i, IsMain: true})
	}
	return hl
}

func TestPlacementWidth(t *testing.T) {
	p := GlyphPlacement{Glyph: glyph('x', 11)}
	assert.Equal(t, 11, p.Width())
	p.HalfWidth = true
	assert.Equal(t, 5, p.Width())
	p.ZeroWidth = true
	assert.Equal(t, 0, p.Width())
}

func TestEmptyLayoutExtents(t *testing.T) {
	hl := NewHorizontalLayout(0)
	assert.Equal(t, 0, hl.XMin())
	assert.Equal(t, 0, hl.XMax())
	assert.Equal(t, 0, hl.Width())
	assert.Equal(t, 0, hl.Height())
	assert.True(t, hl.Bounds().Empty())
	c := hl.Cursor()
	assert.False(t, c.Next())
}

func TestLayoutExtents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.layout")
	defer teardown()
	//
	hl := line()
	assert.Equal(t, 3, hl.Len())
	assert.Equal(t, 0, hl.XMin())
	assert.Equal(t, 30, hl.XMax())
	assert.Equal(t, 0, hl.YMin())
	assert.Equal(t, 10, hl.YMax())
	assert.Equal(t, 30, hl.Width())
	assert.Equal(t, 10, hl.Height())
	assert.Equal(t, dimen.Rect{BotR: dimen.Point{X: 30, Y: 10}}, hl.Bounds())
}

func TestRubiesExtendLayout(t *testing.T) {
	hl := line()
	ruby := GlyphPlacement{Glyph: glyph('r', 5), X: 2, Y: -4}
	hl.At(0).Subs = append(hl.At(0).Subs, ruby)
	assert.Equal(t, -12, hl.YMin())
	assert.Equal(t, 22, hl.Height())
}

func TestDisplayRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.layout")
	defer teardown()
	//
	hl := line()
	hl.SetDisplayRange(1, 2)
	assert.Equal(t, 10, hl.XMin())
	assert.Equal(t, 20, hl.XMax())
	assert.Equal(t, 10, hl.Width())
	hl.SetDisplayRange(-5, 99)
	start, end := hl.DisplayRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	hl.SetDisplayRange(2, -1)
	assert.Equal(t, 0, hl.Width(), "empty range has no extent")
	hl.ResetDisplayRange()
	assert.Equal(t, 30, hl.Width())
}

func TestCursorIsRestartable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.layout")
	defer teardown()
	//
	hl := line()
	hl.SetDisplayRange(1, 3)
	c := hl.Cursor()
	var visited []int
	for c.Next() {
		visited = append(visited, c.Placement().Index)
	}
	assert.Equal(t, []int{1, 2}, visited)
	assert.False(t, c.Next(), "exhausted cursor stays exhausted")
	hl.SetDisplayRange(0, 1)
	c.Reset()
	require.True(t, c.Next())
	assert.Equal(t, 0, c.Index())
	assert.False(t, c.Next())
}

func TestCursorDoesNotAllocate(t *testing.T) {
	hl := line()
	allocs := testing.AllocsPerRun(10, func() {
		c := hl.Cursor()
		for c.Next() {
			_ = c.Placement()
		}
	})
	assert.Equal(t, 0.0, allocs)
}

func TestOverflowRecord(t *testing.T) {
	hl := line()
	assert.Nil(t, hl.Overflow())
	rest, err := glyphing.LineFromText("de", glyphing.NewFontGlyphSpec(0, "test", 10), 3, 0)
	require.NoError(t, err)
	hl.SetOverflowText(4, 6, []*glyphing.SplitDenyGlyphSpecs{rest})
	require.NotNil(t, hl.Overflow())
	assert.Equal(t, 4, hl.Overflow().LineIndex)
	assert.Equal(t, 6, hl.Overflow().VisualLineIndex)
	hl.ClearOverflowText()
	assert.Nil(t, hl.Overflow())
}

func TestJustify(t *testing.T) {
	hl := line()
	hl.Justify(40)
	assert.Equal(t, 0, hl.At(0).JustifyShift)
	assert.Equal(t, 5, hl.At(1).JustifyShift)
	assert.Equal(t, 10, hl.At(2).JustifyShift)
	assert.Equal(t, 40, hl.Width())
	hl.Justify(10)
	assert.Equal(t, 10, hl.At(2).JustifyShift, "lines wider than target are left alone")
}
