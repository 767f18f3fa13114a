package layout

import (
	"fmt"
	"sort"

	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/glyphing"
)

// GlyphPlacement is a glyph at its final pixel position.
type GlyphPlacement struct {
	Glyph        *glyphing.Glyph
	X, Y         int              // left edge and baseline
	Index        int              // index into the source text
	IsMain       bool             // false for rubies
	Subs         []GlyphPlacement // rubies attached to a main glyph
	ZeroWidth    bool             // keeps a caret slot, but takes no space
	HalfWidth    bool             // line-head punctuation set at half width
	JustifyShift int              // horizontal shift from justification
}

// Width is the horizontal space the placement takes.
func (p *GlyphPlacement) Width() int {
	switch {
	case p.ZeroWidth || p.Glyph == nil:
		return 0
	case p.HalfWidth:
		return p.Glyph.Width / 2
	}
	return p.Glyph.Width
}

// VisualX is the x position including justification.
func (p *GlyphPlacement) VisualX() int {
	return p.X + p.JustifyShift
}

// top and bottom of the glyph's ink box
func (p *GlyphPlacement) top() int {
	if p.Glyph == nil {
		return p.Y
	}
	return p.Y - p.Glyph.YMax
}

func (p *GlyphPlacement) bottom() int {
	if p.Glyph == nil {
		return p.Y
	}
	return p.Y - p.Glyph.YMin
}

func (p *GlyphPlacement) String() string {
	ch := "?"
	if p.Glyph != nil {
		ch = p.Glyph.Spec.String()
	}
	return fmt.Sprintf("%s@(%d,%d)#%d", ch, p.VisualX(), p.Y, p.Index)
}

// Overflow records that content did not fit a bounded area.
type Overflow struct {
	LineIndex       int // logical line the remaining content starts in
	VisualLineIndex int // visual line the remaining content would have been set in
	Remaining       []*glyphing.SplitDenyGlyphSpecs
}

// HorizontalLayout is an ordered collection of placed glyphs for one visual
// line. It is not safe for concurrent writers.
type HorizontalLayout struct {
	placements []GlyphPlacement
	start, end int // display range; end < 0 means up to the last placement
	overflow   *Overflow
}

// NewHorizontalLayout creates an empty layout with room for n placements.
func NewHorizontalLayout(n int) *HorizontalLayout {
	return &HorizontalLayout{
		placements: make([]GlyphPlacement, 0, n),
		end:        -1,
	}
}

// Add appends a placement.
func (hl *HorizontalLayout) Add(p GlyphPlacement) {
	hl.placements = append(hl.placements, p)
}

// Len is the number of placements, regardless of the display range.
func (hl *HorizontalLayout) Len() int {
	return len(hl.placements)
}

// At returns placement #i, regardless of the display range.
func (hl *HorizontalLayout) At(i int) *GlyphPlacement {
	return &hl.placements[i]
}

// SetDisplayRange restricts extents and iteration to placements [start, end).
// Negative values are clamped to 0.
func (hl *HorizontalLayout) SetDisplayRange(start, end int) {
	hl.start = dimen.Max(start, 0)
	hl.end = dimen.Max(end, 0)
	tracer().Debugf("layout display range set to [%d,%d)", hl.start, hl.end)
}

// ResetDisplayRange makes all placements displayable.
func (hl *HorizontalLayout) ResetDisplayRange() {
	hl.start, hl.end = 0, -1
}

// DisplayRange returns the effective display range, limited to the existing
// placements.
func (hl *HorizontalLayout) DisplayRange() (start, end int) {
	n := len(hl.placements)
	end = n
	if hl.end >= 0 {
		end = dimen.Min(hl.end, n)
	}
	start = dimen.Min(hl.start, end)
	return
}

// extents folds min and max over the display range, including rubies.
func (hl *HorizontalLayout) extents(f func(*GlyphPlacement) (lo, hi int)) (min, max int, ok bool) {
	start, end := hl.DisplayRange()
	for i := start; i < end; i++ {
		p := &hl.placements[i]
		lo, hi := f(p)
		if !ok {
			min, max, ok = lo, hi, true
		}
		min, max = dimen.Min(min, lo), dimen.Max(max, hi)
		for j := range p.Subs {
			lo, hi = f(&p.Subs[j])
			min, max = dimen.Min(min, lo), dimen.Max(max, hi)
		}
	}
	return
}

func horizontal(p *GlyphPlacement) (int, int) {
	return p.VisualX(), p.VisualX() + p.Width()
}

func vertical(p *GlyphPlacement) (int, int) {
	return p.top(), p.bottom()
}

// XMin is the leftmost x of the display range, or 0 if it is empty.
func (hl *HorizontalLayout) XMin() int {
	min, _, _ := hl.extents(horizontal)
	return min
}

// XMax is the rightmost x of the display range, or 0 if it is empty.
func (hl *HorizontalLayout) XMax() int {
	_, max, _ := hl.extents(horizontal)
	return max
}

// YMin is the topmost y of the display range, or 0 if it is empty.
func (hl *HorizontalLayout) YMin() int {
	min, _, _ := hl.extents(vertical)
	return min
}

// YMax is the lowest y of the display range, or 0 if it is empty.
func (hl *HorizontalLayout) YMax() int {
	_, max, _ := hl.extents(vertical)
	return max
}

// Width of the display range.
func (hl *HorizontalLayout) Width() int {
	min, max, _ := hl.extents(horizontal)
	return max - min
}

// Height of the display range.
func (hl *HorizontalLayout) Height() int {
	min, max, _ := hl.extents(vertical)
	return max - min
}

// Bounds returns the bounding box of the display range.
func (hl *HorizontalLayout) Bounds() dimen.Rect {
	x0, x1, _ := hl.extents(horizontal)
	y0, y1, _ := hl.extents(vertical)
	return dimen.Rect{
		TopL: dimen.Point{X: x0, Y: y0},
		BotR: dimen.Point{X: x1, Y: y1},
	}
}

// SetOverflowText records that the content did not fit. Content was cut in
// logical line lineIndex, at visual line visualIndex, and resumes with the
// remaining logical lines.
func (hl *HorizontalLayout) SetOverflowText(lineIndex, visualIndex int, remaining []*glyphing.SplitDenyGlyphSpecs) {
	hl.overflow = &Overflow{
		LineIndex:       lineIndex,
		VisualLineIndex: visualIndex,
		Remaining:       remaining,
	}
	tracer().Debugf("layout overflow in line %d (visual %d), %d logical lines remaining",
		lineIndex, visualIndex, len(remaining))
}

// ClearOverflowText clears a previously set overflow record.
func (hl *HorizontalLayout) ClearOverflowText() {
	hl.overflow = nil
}

// Overflow returns the overflow record, or nil if everything fit.
func (hl *HorizontalLayout) Overflow() *Overflow {
	return hl.overflow
}

// Justify distributes the difference between width and the current width of
// the display range evenly between the main placements of the range, by
// setting their justification shift. Lines wider than width are left alone.
func (hl *HorizontalLayout) Justify(width int) {
	start, end := hl.DisplayRange()
	var mains []int
	for i := start; i < end; i++ {
		if hl.placements[i].IsMain {
			mains = append(mains, i)
		}
	}
	extra := width - hl.Width()
	if extra <= 0 || len(mains) < 2 {
		return
	}
	// shifts follow visual order, which may differ from the order of placements
	sort.SliceStable(mains, func(a, b int) bool {
		return hl.placements[mains[a]].X < hl.placements[mains[b]].X
	})
	gaps := len(mains) - 1
	for k, i := range mains {
		shift := extra * k / gaps
		p := &hl.placements[i]
		p.JustifyShift = shift
		for j := range p.Subs {
			p.Subs[j].JustifyShift = shift
		}
	}
}

// --- Iteration -------------------------------------------------------------

// Cursor iterates over the placements of a layout's display range.
// It is a value type and iterating does not allocate. Changing the display
// range while iterating results in undefined visitation order; call Reset
// afterwards to start over with the new range.
type Cursor struct {
	hl       *HorizontalLayout
	pos, end int
}

// Cursor returns a cursor positioned before the first placement of the
// display range.
func (hl *HorizontalLayout) Cursor() Cursor {
	c := Cursor{hl: hl}
	c.Reset()
	return c
}

// Reset positions the cursor before the start of the display range, which is
// re-read from the layout.
func (c *Cursor) Reset() {
	start, end := c.hl.DisplayRange()
	c.pos, c.end = start-1, end
}

// Next moves to the next placement, returning false at the end of the range.
func (c *Cursor) Next() bool {
	if c.pos < c.end {
		c.pos++
	}
	return c.pos < c.end
}

// Placement returns the current placement.
func (c *Cursor) Placement() *GlyphPlacement {
	return &c.hl.placements[c.pos]
}

// Index returns the index of the current placement within the layout.
func (c *Cursor) Index() int {
	return c.pos
}
