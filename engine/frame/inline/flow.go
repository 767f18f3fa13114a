package inline

import (
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/frame/layout"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/uax/uax11"
)

// Frame is the area visual lines are flowed into. A Width or Height of 0
// means unbounded. Without Wrap, every logical line yields one visual line.
// Flowing stops at the first line wider than Width: its content beyond Width
// and all following logical lines overflow.
type Frame struct {
	Width, Height int
	Wrap          bool
}

// visualLine is the groups [from, to) of logical line #line.
type visualLine struct {
	line, from, to int
}

// cut is where content stopped fitting: group #group of logical line #line.
type cut struct {
	line, group int
}

// Flow breaks an assembly into visual lines fitting frame and places them,
// top to bottom, starting at y = 0. Lines are broken between groups only, a
// group wider than the frame gets a line of its own.
//
// If content does not fit, the last produced layout carries an overflow
// record with the logical lines to resume from.
func (a *Assembler) Flow(asm *Assembly, frame Frame, rtlAt func(int) bool) ([]*layout.HorizontalLayout, error) {
	if asm == nil {
		return nil, core.Error(core.EINVALID, "cannot flow nil assembly")
	}
	vlines, overflow := breakLines(asm, frame)
	tracer().Debugf("flow: %d visual lines", len(vlines))
	if a.Options.HalfWidthLineHead {
		if heads := lineHeads(asm, vlines); !heads.Empty() {
			var err error
			if asm, err = a.ReAssemble(asm, heads); err != nil {
				return nil, err
			}
		}
	}
	layouts := make([]*layout.HorizontalLayout, 0, len(vlines))
	y := 0
	for _, vl := range vlines {
		al := asm.Lines[vl.line]
		elements := al.Elements[groupStart(al, vl.from):groupStart(al, vl.to)]
		ascent, descent := 0, 0
		width := 0
		for _, el := range elements {
			ascent = dimen.Max(ascent, Ascent(el))
			descent = dimen.Max(descent, Descent(el))
			width += el.Metrics().Advance()
		}
		if frame.Height > 0 && y+ascent+descent > frame.Height {
			overflow = &cut{line: vl.line, group: vl.from}
			break
		}
		x := 0
		if a.Options.Direction == glyphing.RightToLeft && frame.Width > 0 {
			x = frame.Width - width
		}
		layouts = append(layouts, Place(elements, x, y+ascent, a.Options.Direction, rtlAt))
		y += ascent + descent + a.Options.LineGap
	}
	if overflow != nil {
		visual := len(layouts)
		if len(layouts) == 0 {
			layouts = append(layouts, layout.NewHorizontalLayout(0))
		}
		layouts[len(layouts)-1].SetOverflowText(overflow.line, visual, remaining(asm, overflow))
	}
	return layouts, nil
}

// breakLines breaks logical lines first-fit. It returns the visual lines
// fitting horizontally and, if content had to be cut, where.
func breakLines(asm *Assembly, frame Frame) ([]visualLine, *cut) {
	var vlines []visualLine
	for li, al := range asm.Lines {
		from, w := 0, 0
		for g := range al.GroupEnds {
			gw := al.GroupAdvance(g)
			if frame.Width <= 0 || w+gw <= frame.Width {
				w += gw
				continue
			}
			if !frame.Wrap {
				vlines = append(vlines, visualLine{line: li, from: from, to: g})
				return vlines, &cut{line: li, group: g}
			}
			if g > from { // a group too wide for any line gets a line of its own
				vlines = append(vlines, visualLine{line: li, from: from, to: g})
				from = g
			}
			w = gw
		}
		vlines = append(vlines, visualLine{line: li, from: from, to: len(al.GroupEnds)})
	}
	return vlines, nil
}

func groupStart(al *AssembledLine, g int) int {
	if g == 0 {
		return 0
	}
	return al.GroupEnds[g-1]
}

// remaining collects the logical lines to resume with after a cut.
func remaining(asm *Assembly, c *cut) []*glyphing.SplitDenyGlyphSpecs {
	rest := make([]*glyphing.SplitDenyGlyphSpecs, 0, len(asm.Lines)-c.line)
	if tail := asm.Lines[c.line].Source.Tail(c.group); tail != nil {
		rest = append(rest, tail)
	}
	for _, al := range asm.Lines[c.line+1:] {
		rest = append(rest, al.Source)
	}
	return rest
}

// lineHeads collects the source indices of line-head punctuation to be set in
// half width.
func lineHeads(asm *Assembly, vlines []visualLine) *hashset.Set {
	heads := hashset.New()
	for _, vl := range vlines {
		al := asm.Lines[vl.line]
		start := groupStart(al, vl.from)
		if start >= len(al.Elements) {
			continue
		}
		if fe, ok := al.Elements[start].(*FontElement); ok && LineHeadHalfWidth(fe.Spec.FontSpec().Char) {
			heads.Add(fe.Index)
		}
	}
	tracer().Debugf("flow: %d line heads set in half width", heads.Size())
	return heads
}

// LineHeadHalfWidth is true for opening punctuation of full width, which is
// set in half width at the start of a line.
func LineHeadHalfWidth(r rune) bool {
	if !unicode.Is(unicode.Ps, r) {
		return false
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return uax11.Width(buf[:n], uax11.LatinContext) >= 2
}
