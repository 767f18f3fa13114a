package caret

import (
	"errors"
	"testing"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/parameters"
	"github.com/npillmayer/rubytext/engine/frame/layout"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ubidi "golang.org/x/text/unicode/bidi"
)

func sourceIndices(t *Table) []int {
	s := make([]int, t.Len())
	for i, u := range t.Units() {
		s[i] = u.SourceIndex()
	}
	return s
}

func destinationIndices(t *Table) []int {
	d := make([]int, t.Len())
	for i, u := range t.Units() {
		d[i] = u.DestinationIndex()
	}
	return d
}

func assertMonotonic(t *testing.T, table *Table) {
	for i := 1; i < table.Len(); i++ {
		assert.Less(t, table.Unit(i-1).SourceIndex(), table.Unit(i).SourceIndex(),
			"source index does not increase at unit #%d", i)
	}
}

func TestEmptyText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("", Config{})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, firstUnit(0, 0, 0), table.Unit(0))
	assert.True(t, table.Unit(0).IsFirst())
	assert.Equal(t, 0, table.Unit(0).SourceIndex())
	//
	units, err := NewBuilder().GetAllCaretUnits()
	require.NoError(t, err)
	require.Equal(t, 1, len(units))
	assert.Equal(t, firstUnit(0, 0, 0), units[0])
	table, err = NewBuilder().Finish()
	require.NoError(t, err)
	assert.Equal(t, []CaretUnit{firstUnit(0, 0, 0)}, table.Units())
}

func TestLatinUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("abc", Config{})
	require.NoError(t, err)
	require.Equal(t, 4, table.Len(), "sentinel plus one unit per character")
	assert.True(t, table.Unit(0).IsFirst())
	assert.Equal(t, []int{0, 1, 2, 3}, sourceIndices(table))
	assert.Equal(t, []int{0, 1, 2, 3}, destinationIndices(table))
	for _, u := range table.Units() {
		assert.False(t, u.RTL)
		assert.Equal(t, 0, u.Line)
	}
}

func TestLineBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("ab\ncd\n\ne", Config{})
	require.NoError(t, err)
	require.Equal(t, 4, table.Lines())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, sourceIndices(table))
	second := table.LineUnits(1)
	require.Equal(t, 3, len(second))
	assert.True(t, second[0].IsFirst())
	assert.Equal(t, 3, second[0].Source.Offset, "line starts past the break")
	assert.Equal(t, 1, second[2].Line)
	empty := table.LineUnits(2)
	require.Equal(t, 1, len(empty))
	assert.Equal(t, 6, empty[0].SourceIndex())
	assert.Nil(t, table.LineUnits(4))
	assertMonotonic(t, table)
}

func TestArabicClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("كتب", Config{Script: glyphing.Arabic})
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, sourceIndices(table))
	assert.Equal(t, []int{0, 3, 2, 1}, destinationIndices(table), "right-to-left run is reversed")
	for _, u := range table.Units()[1:] {
		assert.True(t, u.RTL)
	}
	// beh with kasra is a single caret stop
	table, err = Map("بِت", Config{Script: glyphing.Arabic})
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, 2, table.Unit(1).Source.Length)
	assert.Equal(t, []int{0, 2, 3}, sourceIndices(table))
	assert.Equal(t, []int{0, 3, 1}, destinationIndices(table))
	assert.Equal(t, 1, table.UnitForSource(1), "no caret stop inside a cluster")
}

func TestThaiClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("กี่ก", Config{Script: glyphing.Thai})
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []int{0, 3, 4}, sourceIndices(table))
	assert.Equal(t, []int{0, 3, 4}, destinationIndices(table))
	assert.False(t, table.Unit(1).RTL)
	// without a segmenter every code-point is a caret stop
	table, err = Map("กี่ก", Config{Script: glyphing.Thai, Segmenters: map[glyphing.Script]ClusterSegmenter{}})
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
}

func TestSegmenterCoversText(t *testing.T) {
	seg := ThaiSegmenter()
	text := []rune("สวัสดีครับ")
	clusters := seg.Tokenize(text)
	require.NotEmpty(t, clusters)
	pos := 0
	for _, c := range clusters {
		assert.Equal(t, pos, c.Start)
		pos += c.Length
	}
	assert.Equal(t, len(text), pos)
	assert.Less(t, len(clusters), len(text))
	assert.Nil(t, seg.Tokenize(nil))
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	for _, text := range []string{"abc", "كتب", "abc كتب (x) 12", "บ้าน\nhome", "א ב"} {
		table, err := Map(text, Config{Script: glyphing.Arabic})
		require.NoError(t, err)
		assertMonotonic(t, table)
		for i, u := range table.Units() {
			assert.Equal(t, i, table.UnitForSource(u.SourceIndex()), "%q: unit #%d", text, i)
			dst, ok := table.SourceToDestination(u.SourceIndex())
			require.True(t, ok)
			src, ok := table.DestinationToSource(dst)
			require.True(t, ok)
			assert.Equal(t, u.SourceIndex(), src, "%q: unit #%d", text, i)
		}
		_, ok := table.SourceToDestination(len([]rune(text)) + 1)
		assert.False(t, ok)
	}
}

func TestNavigation(t *testing.T) {
	table, err := Map("ab", Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Next(0))
	assert.Equal(t, 2, table.Next(2))
	assert.Equal(t, 0, table.Prev(0))
	assert.Equal(t, 1, table.Prev(2))
}

func TestBuilderLifecycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	var zero Builder
	err := zero.AddSimple(0, 0, false)
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	b := NewBuilder()
	require.NoError(t, b.AddFirstUnit(0, 0))
	require.NoError(t, b.AddSimple(0, 0, false))
	err = b.AddSimple(0, 0, false)
	assert.Equal(t, core.EINVALID, core.Code(err), "unit must advance")
	require.NoError(t, b.AddLineBreak())
	require.NoError(t, b.AddSimple(0, 0, false))
	units, err := b.GetAllCaretUnits()
	require.NoError(t, err)
	assert.Equal(t, 4, len(units), "units include the line in progress")
	units, _ = b.GetAllCaretUnits()
	assert.Equal(t, 4, len(units), "reading units does not flush")
	table, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Lines())
	assert.Equal(t, []int{0, 1, 2, 3}, sourceIndices(table))
	//
	assert.True(t, errors.Is(b.AddSimple(1, 1, false), ErrBuilderFinished))
	_, err = b.Finish()
	assert.True(t, errors.Is(err, ErrBuilderFinished))
	units, err = b.GetAllCaretUnits()
	assert.True(t, errors.Is(err, ErrBuilderFinished))
	assert.Nil(t, units, "no sentinel from a finished builder")
	_, err = zero.GetAllCaretUnits()
	assert.Equal(t, core.EINVALID, core.Code(err))
	b.Initialize()
	require.NoError(t, b.AddSimple(0, 0, false))
	units, err = b.GetAllCaretUnits()
	require.NoError(t, err)
	assert.Equal(t, 2, len(units), "sentinel is seeded on first unit")
}

func TestConfigFromRegisters(t *testing.T) {
	assert.Equal(t, Config{}, ConfigFromRegisters(nil))
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_TEXTDIRECTION, ubidi.RightToLeft)
	regs.Push(parameters.P_SCRIPT, "Hebrew")
	cfg := ConfigFromRegisters(regs)
	assert.Equal(t, glyphing.RightToLeft, cfg.Direction)
	assert.Equal(t, glyphing.Hebrew, cfg.Script)
}

func placed(order []int) *layout.HorizontalLayout {
	hl := layout.NewHorizontalLayout(len(order))
	for v, index := range order {
		g := &glyphing.Glyph{Width: 10, Height: 10, YMax: 8}
		hl.Add(layout.GlyphPlacement{Glyph: g, X: 10 * v, Y: 8, Index: index, IsMain: true})
	}
	return hl
}

func TestCaretX(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.caret")
	defer teardown()
	//
	table, err := Map("abc", Config{})
	require.NoError(t, err)
	hl := placed([]int{0, 1, 2})
	x, ok := table.CaretX(hl, 0)
	require.True(t, ok)
	assert.Equal(t, 0, x, "before the first character")
	x, _ = table.CaretX(hl, 2)
	assert.Equal(t, 20, x)
	x, _ = table.CaretX(hl, 3)
	assert.Equal(t, 30, x)
	//
	table, err = Map("كتب", Config{Script: glyphing.Arabic})
	require.NoError(t, err)
	hl = placed([]int{2, 1, 0})
	x, _ = table.CaretX(hl, 0)
	assert.Equal(t, 30, x, "right-to-left line starts at the right")
	x, _ = table.CaretX(hl, 1)
	assert.Equal(t, 20, x)
	x, _ = table.CaretX(hl, 3)
	assert.Equal(t, 0, x)
	_, ok = table.CaretX(layout.NewHorizontalLayout(0), 1)
	assert.False(t, ok)
}
