package inline

import (
	"github.com/npillmayer/rubytext/engine/bidi"
	"github.com/npillmayer/rubytext/engine/frame/layout"
	"github.com/npillmayer/rubytext/engine/glyphing"
)

// Place positions elements of one visual line, starting at x with the given
// baseline. Elements are given in logical order; rtlAt tells for a source
// index whether it reads right-to-left, and runs against the base direction
// are reversed. If rtlAt is nil, every element reads in the base direction.
//
// Placements are added to the resulting layout in visual order, left to right.
// In right-to-left runs a group's rubies are mirrored along with its mains,
// keeping the ruby block over the parent block.
func Place(elements []Element, x, baseline int, base glyphing.Direction,
	rtlAt func(int) bool) *layout.HorizontalLayout {
	//
	hl := layout.NewHorizontalLayout(len(elements))
	if len(elements) == 0 {
		return hl
	}
	isRTL := func(i int) bool {
		if rtlAt == nil {
			return base == glyphing.RightToLeft
		}
		return rtlAt(elements[i].Metrics().Index)
	}
	visual := bidi.VisualOrder(0, len(elements), base, isRTL)
	order := make([]int, len(elements))
	for l, v := range visual {
		order[v] = l
	}
	for _, l := range order {
		el := elements[l]
		m := el.Metrics()
		left := x
		rtl := isRTL(l)
		if rtl {
			left += m.Spacing // spacing follows the glyph in reading direction
		}
		p := layout.GlyphPlacement{
			Glyph:     el.Glyph(),
			X:         left + m.LeftMargin + m.Centering + m.ShiftX,
			Y:         baseline - m.VOffset + m.ShiftY,
			Index:     m.Index,
			IsMain:    true,
			ZeroWidth: m.ZeroWidth,
			HalfWidth: m.HalfWidth,
		}
		if len(m.Rubies) > 0 {
			p.Subs = make([]layout.GlyphPlacement, len(m.Rubies))
			for i, r := range m.Rubies {
				rx := left + r.XOffset
				if rtl { // ruby offsets are mirrored with the run
					rx = left + m.BlockWidth() - r.XOffset - r.Width
				}
				p.Subs[i] = layout.GlyphPlacement{
					Glyph: r.Glyph,
					X:     rx + r.Spacing,
					Y:     baseline - m.VOffset - r.YOffset,
					Index: m.Index,
				}
			}
		}
		hl.Add(p)
		x += m.Advance()
	}
	return hl
}
