package inline

import (
	"testing"

	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, a *Assembler, lines ...*glyphing.SplitDenyGlyphSpecs) *Assembly {
	asm, err := a.Assemble(lines, nil)
	require.NoError(t, err)
	return asm
}

func textLine(t *testing.T, text string, start int) *glyphing.SplitDenyGlyphSpecs {
	line, err := glyphing.LineFromText(text, font(0), start, 0)
	require.NoError(t, err)
	return line
}

// pairs creates a line with groups of two mains each.
func pairs(t *testing.T, text string) *glyphing.SplitDenyGlyphSpecs {
	var groups []*glyphing.GlyphSpecGroup
	runes := []rune(text)
	for i := 0; i < len(runes); i += 2 {
		g, err := glyphing.NewGlyphSpecGroup(mains(string(runes[i:i+2]), i, 0), nil)
		require.NoError(t, err)
		groups = append(groups, g)
	}
	line, err := glyphing.NewSplitDenyGlyphSpecs(groups...)
	require.NoError(t, err)
	return line
}

func TestFlowNeverBreaksInsideGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	asm := assemble(t, a, pairs(t, "abcdefghij"))
	for _, width := range []int{15, 20, 30, 50, 70} {
		layouts, err := a.Flow(asm, Frame{Width: width, Wrap: true}, nil)
		require.NoError(t, err)
		total := 0
		for _, hl := range layouts {
			assert.Equal(t, 0, hl.Len()%2, "width %d: line broken inside a group", width)
			assert.Nil(t, hl.Overflow())
			total += hl.Len()
		}
		assert.Equal(t, 10, total)
	}
	layouts, _ := a.Flow(asm, Frame{Width: 50, Wrap: true}, nil)
	require.Equal(t, 3, len(layouts))
	assert.Equal(t, []int{4, 4, 2}, []int{layouts[0].Len(), layouts[1].Len(), layouts[2].Len()})
}

func TestFlowStacksLines(t *testing.T) {
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	a.Options.LineGap = 5
	asm := assemble(t, a, textLine(t, "ab", 0), textLine(t, "cd", 3))
	layouts, err := a.Flow(asm, Frame{}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, len(layouts))
	assert.Equal(t, 16, layouts[0].At(0).Y, "first baseline is at the ascent")
	assert.Equal(t, 16+20+5, layouts[1].At(0).Y)
	assert.Equal(t, 10, layouts[0].At(1).X)
}

func TestWidthOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	asm := assemble(t, a, textLine(t, "abcdef", 0), textLine(t, "gh", 7))
	layouts, err := a.Flow(asm, Frame{Width: 30}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, len(layouts))
	hl := layouts[0]
	assert.Equal(t, 3, hl.Len())
	overflow := hl.Overflow()
	require.NotNil(t, overflow)
	assert.Equal(t, 0, overflow.LineIndex)
	assert.Equal(t, 1, overflow.VisualLineIndex, "rest follows the cut line")
	require.Equal(t, 2, len(overflow.Remaining))
	from, to := overflow.Remaining[0].SourceRange()
	assert.Equal(t, 3, from)
	assert.Equal(t, 5, to)
	// resuming from the overflow record lays out the rest
	rest := assemble(t, a, overflow.Remaining...)
	layouts, err = a.Flow(rest, Frame{Width: 30}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, len(layouts))
	assert.Nil(t, layouts[1].Overflow())
}

func TestHeightOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	asm := assemble(t, a, textLine(t, "abcd", 0))
	layouts, err := a.Flow(asm, Frame{Width: 20, Height: 30, Wrap: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, len(layouts))
	overflow := layouts[0].Overflow()
	require.NotNil(t, overflow)
	assert.Equal(t, 0, overflow.LineIndex)
	assert.Equal(t, 1, overflow.VisualLineIndex)
	from, _ := overflow.Remaining[0].SourceRange()
	assert.Equal(t, 2, from)
	// nothing fits at all
	layouts, err = a.Flow(asm, Frame{Width: 20, Height: 5, Wrap: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, len(layouts))
	assert.Equal(t, 0, layouts[0].Len())
	require.NotNil(t, layouts[0].Overflow())
	assert.Equal(t, 0, layouts[0].Overflow().VisualLineIndex)
}

func TestOverflowRecordsLogicalAndVisualLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	asm := assemble(t, a, textLine(t, "abcdefghi", 0), textLine(t, "ab", 10))
	layouts, err := a.Flow(asm, Frame{Width: 30, Height: 45, Wrap: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, len(layouts), "two lines of 20 px fit into 45 px")
	overflow := layouts[1].Overflow()
	require.NotNil(t, overflow)
	assert.Nil(t, layouts[0].Overflow())
	assert.Equal(t, 0, overflow.LineIndex, "cut inside the first logical line")
	assert.Equal(t, 2, overflow.VisualLineIndex, "third visual line did not fit")
	require.Equal(t, 2, len(overflow.Remaining))
	from, _ := overflow.Remaining[0].SourceRange()
	assert.Equal(t, 6, from)
}

func TestHalfWidthLineHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	assert.True(t, LineHeadHalfWidth('「'))
	assert.False(t, LineHeadHalfWidth('('))
	assert.False(t, LineHeadHalfWidth('」'))
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	a.Options.HalfWidthLineHead = true
	asm := assemble(t, a, textLine(t, "ab「cd", 0))
	layouts, err := a.Flow(asm, Frame{Width: 20, Wrap: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, len(layouts))
	head := layouts[1].At(0)
	assert.True(t, head.HalfWidth)
	assert.Equal(t, 10, head.Width())
	assert.False(t, layouts[0].At(0).HalfWidth)
}

func TestPlaceReordersRightToLeftRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	asm := assemble(t, a, textLine(t, "abcd", 0))
	rtl := func(i int) bool { return i == 1 || i == 2 }
	hl := Place(asm.Lines[0].Elements, 0, 16, glyphing.LeftToRight, rtl)
	indices := make([]int, hl.Len())
	for i := range indices {
		indices[i] = hl.At(i).Index
		assert.Equal(t, 10*i, hl.At(i).X)
	}
	assert.Equal(t, []int{0, 2, 1, 3}, indices)
	hl = Place(asm.Lines[0].Elements, 0, 16, glyphing.RightToLeft, nil)
	assert.Equal(t, 3, hl.At(0).Index, "right-to-left base reverses the whole line")
}

func TestPlaceRubies(t *testing.T) {
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	g, err := glyphing.NewGlyphSpecGroup(mains("M", 0, 0), rubies("r"))
	require.NoError(t, err)
	line, _ := glyphing.NewSplitDenyGlyphSpecs(g)
	asm := assemble(t, a, line)
	hl := Place(asm.Lines[0].Elements, 5, 40, glyphing.LeftToRight, nil)
	require.Equal(t, 1, hl.Len())
	main := hl.At(0)
	require.Equal(t, 1, len(main.Subs))
	ruby := main.Subs[0]
	assert.Equal(t, 25, ruby.X, "ruby is centered over its parent")
	assert.Equal(t, 20, ruby.Y)
	assert.False(t, ruby.IsMain)
	assert.Equal(t, 100, hl.Width())
}

func TestPlaceRubiesRightToLeft(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.inline")
	defer teardown()
	//
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	g, err := glyphing.NewGlyphSpecGroup(mains("ab", 0, 0), rubies("M"))
	require.NoError(t, err)
	line, _ := glyphing.NewSplitDenyGlyphSpecs(g)
	asm := assemble(t, a, line)
	allRTL := func(int) bool { return true }
	for _, base := range []glyphing.Direction{glyphing.LeftToRight, glyphing.RightToLeft} {
		hl := Place(asm.Lines[0].Elements, 0, 40, base, allRTL)
		require.Equal(t, 2, hl.Len())
		assert.Equal(t, 1, hl.At(0).Index, "second main is drawn first")
		assert.Equal(t, 20, hl.At(0).X)
		assert.Equal(t, 70, hl.At(1).X)
		ruby := hl.At(1).Subs[0]
		assert.Equal(t, 0, ruby.X, "ruby block covers the mirrored group")
		assert.Equal(t, 0, hl.XMin())
		assert.Equal(t, 100, hl.XMax())
	}
	// left-to-right keeps rubies at their offsets
	hl := Place(asm.Lines[0].Elements, 0, 40, glyphing.LeftToRight, nil)
	assert.Equal(t, 0, hl.At(0).Subs[0].X)
	assert.Equal(t, 100, hl.XMax())
}

func TestPlaceSeveralRubiesRightToLeft(t *testing.T) {
	a := NewAssembler(newTestCatalog(), DefaultOptions())
	g, err := glyphing.NewGlyphSpecGroup(mains("ab", 0, 0), rubies("ss"))
	require.NoError(t, err)
	line, _ := glyphing.NewSplitDenyGlyphSpecs(g)
	asm := assemble(t, a, line)
	ltr := Place(asm.Lines[0].Elements, 0, 40, glyphing.LeftToRight, nil)
	rtl := Place(asm.Lines[0].Elements, 0, 40, glyphing.RightToLeft, nil)
	width := 0
	for _, el := range asm.Lines[0].Elements {
		width += el.Metrics().BlockWidth()
	}
	// each ruby is mirrored at the group's block
	for l := 0; l < 2; l++ {
		r := ltr.At(l).Subs[0]
		m := rtl.At(1 - l).Subs[0]
		assert.Equal(t, width-(r.X+r.Width()), m.X, "ruby of main #%d", l)
	}
}
