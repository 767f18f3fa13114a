package inline

import (
	"fmt"

	"github.com/npillmayer/rubytext/engine/glyphing"
)

// Element is a rendering element: a main glyph or an inline image together
// with its spacing and rubies. Elements are immutable once assembled.
// The set of implementations is closed: *FontElement and *ImageElement.
type Element interface {
	Metrics() *ElementMetrics
	Glyph() *glyphing.Glyph
	isElement()
}

// ElementMetrics are the horizontal and vertical metrics common to all
// elements, in px.
//
// An element's box is laid out as
//
//     LeftMargin | Centering | glyph | Centering | RightMargin | Spacing
//
// with Spacing moving to the left end of the box in right-to-left runs.
type ElementMetrics struct {
	Index       int // index into the source text
	Width       int // glyph width, before half-width or zero-width adjustment
	Height      int
	LeftMargin  int
	RightMargin int
	Centering   int // ruby centering space on either side of the glyph
	Spacing     int // base spacing after the glyph
	VOffset     int // positive is upwards
	ShiftX      int // script specific offsets
	ShiftY      int
	HalfWidth   bool
	ZeroWidth   bool
	Rubies      []SubElement
}

// InkWidth is the width the glyph takes.
func (m *ElementMetrics) InkWidth() int {
	switch {
	case m.ZeroWidth:
		return 0
	case m.HalfWidth:
		return m.Width / 2
	}
	return m.Width
}

// BlockWidth is the width of the glyph with margins and ruby centering,
// but without base spacing.
func (m *ElementMetrics) BlockWidth() int {
	return m.LeftMargin + 2*m.Centering + m.InkWidth() + m.RightMargin
}

// Advance is the total horizontal space of an element.
func (m *ElementMetrics) Advance() int {
	return m.BlockWidth() + m.Spacing
}

// SubElement is a ruby glyph attached to a main element.
type SubElement struct {
	Glyph   *glyphing.Glyph
	Width   int // glyph width plus Spacing on both sides
	Spacing int // ruby centering space on either side
	XOffset int // offset of the sub-element's box from the parent's block
	YOffset int // distance above the parent's baseline
}

// FontElement is a glyph of a font.
type FontElement struct {
	ElementMetrics
	glyph *glyphing.Glyph
	Spec  glyphing.GlyphPlacementSpec
}

// ImageElement is an inline image, sized by its sizing rule.
type ImageElement struct {
	ElementMetrics
	glyph  *glyphing.Glyph
	Source string
	Name   string
}

// Metrics returns the element's metrics.
func (fe *FontElement) Metrics() *ElementMetrics { return &fe.ElementMetrics }

// Glyph returns the glyph of the element.
func (fe *FontElement) Glyph() *glyphing.Glyph { return fe.glyph }

func (fe *FontElement) isElement() {}

func (fe *FontElement) String() string {
	return fmt.Sprintf("font#%d(%v +%d, %d rubies)", fe.Index, fe.Spec.Spec, fe.Spacing, len(fe.Rubies))
}

// Metrics returns the element's metrics.
func (ie *ImageElement) Metrics() *ElementMetrics { return &ie.ElementMetrics }

// Glyph returns a glyph carrying the computed size of the image.
func (ie *ImageElement) Glyph() *glyphing.Glyph { return ie.glyph }

func (ie *ImageElement) isElement() {}

func (ie *ImageElement) String() string {
	return fmt.Sprintf("image#%d(%s:%s %dx%d)", ie.Index, ie.Source, ie.Name, ie.Width, ie.Height)
}

var _ Element = &FontElement{}
var _ Element = &ImageElement{}

// Ascent is the height of an element above its baseline, including rubies.
func Ascent(el Element) int {
	m := el.Metrics()
	a := m.Height
	if g := el.Glyph(); g != nil {
		a = g.YMax
	}
	a += m.VOffset - m.ShiftY
	for _, r := range m.Rubies {
		if ra := m.VOffset + r.YOffset + r.Glyph.YMax; ra > a {
			a = ra
		}
	}
	return a
}

// Descent is the depth of an element below its baseline.
func Descent(el Element) int {
	m := el.Metrics()
	d := 0
	if g := el.Glyph(); g != nil {
		d = -g.YMin
	}
	return d - m.VOffset + m.ShiftY
}
