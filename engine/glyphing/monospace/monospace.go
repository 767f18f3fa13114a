package monospace

import (
	"unicode/utf8"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/uax/uax11"
)

// Catalog is a glyph catalog for monospace typesetting.
type Catalog struct {
	cell    int
	context *uax11.Context
	images  map[imageKey][2]int
}

type imageKey struct {
	source, name string
}

// New creates a glyph catalog for monospace typesetting.
// A cell-width may be given which will then be used for all font sizes.
// If it is zero, a cell is half the font size of a glyph spec.
// If context is nil, a Latin context is used for ambiguous widths.
func New(cell int, context *uax11.Context) *Catalog {
	cat := &Catalog{
		cell:    cell,
		context: context,
		images:  make(map[imageKey][2]int),
	}
	if context == nil {
		cat.context = uax11.LatinContext
	}
	return cat
}

// Cells returns the number of cells a rune occupies.
func (ms *Catalog) Cells(r rune) int {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return uax11.Width(buf[:n], ms.context)
}

// Glyph creates a glyph for a font glyph spec.
// Glyphs for control characters and invalid runes are missing.
func (ms *Catalog) Glyph(spec glyphing.FontGlyphSpec) (*glyphing.Glyph, error) {
	if spec.Char < ' ' || spec.Char == utf8.RuneError || spec.Size <= 0 {
		return nil, core.WrapError(glyphing.ErrMissingGlyphMetric, core.EMISSING,
			"monospace catalog has no glyph for %v", spec)
	}
	cell := ms.cell
	if cell == 0 {
		cell = spec.Size / 2
	}
	raw := float64(ms.Cells(spec.Char) * cell)
	ascent := dimen.Trunc(float64(spec.Size) * 0.8)
	g := &glyphing.Glyph{
		Spec:     spec,
		Width:    dimen.Trunc(raw * spec.Scale()),
		Height:   spec.Size,
		RawWidth: raw,
		YMax:     ascent,
		YMin:     ascent - spec.Size,
	}
	g.XMax = g.Width
	tracer().Debugf("monospace glyph %v", g)
	return g, nil
}

// RegisterImage tells the catalog about an image with its intrinsic size.
func (ms *Catalog) RegisterImage(source, name string, w, h int) {
	ms.images[imageKey{source, name}] = [2]int{w, h}
}

// Image returns a glyph for a registered image.
func (ms *Catalog) Image(spec glyphing.ImageGlyphSpec) (*glyphing.Glyph, error) {
	wh, ok := ms.images[imageKey{spec.Source, spec.Name}]
	if !ok {
		return nil, core.WrapError(glyphing.ErrMissingGlyphMetric, core.EMISSING,
			"monospace catalog has no image %v", spec)
	}
	return &glyphing.Glyph{
		Spec:     spec,
		Width:    wh[0],
		Height:   wh[1],
		RawWidth: float64(wh[0]),
		XMax:     wh[0],
		YMax:     wh[1],
	}, nil
}

var _ glyphing.Catalog = &Catalog{}
