package glyphing

import (
	"errors"
	"fmt"

	"github.com/npillmayer/rubytext/core"
)

// ErrMissingGlyphMetric is returned if a catalog has no metrics for a glyph spec.
// Substituting an empty glyph would silently corrupt all spacing computations.
var ErrMissingGlyphMetric = errors.New("missing glyph metric")

// Glyph is a handle for a glyph with its metrics in px.
// Vertical extents are relative to the baseline, with YMax above it
// (as in font design space).
type Glyph struct {
	Spec                   GlyphSpec
	Width, Height          int
	RawWidth               float64 // advance before horizontal scaling, unrounded
	XMin, XMax, YMin, YMax int
}

func (g *Glyph) String() string {
	if g == nil {
		return "glyph(nil)"
	}
	return fmt.Sprintf("glyph(%v, w=%d, h=%d)", g.Spec, g.Width, g.Height)
}

// Catalog maps glyph specs to glyphs. Implementations are expected to cache,
// and lookups must be pure with respect to the spec.
type Catalog interface {
	Glyph(FontGlyphSpec) (*Glyph, error)
	Image(ImageGlyphSpec) (*Glyph, error)
}

// LookupGlyph gets a font glyph from a catalog. A nil glyph without an error
// is reported as ErrMissingGlyphMetric.
func LookupGlyph(cat Catalog, spec FontGlyphSpec) (*Glyph, error) {
	if cat == nil {
		return nil, core.WrapError(ErrMissingGlyphMetric, core.EMISSING, "no glyph catalog")
	}
	g, err := cat.Glyph(spec)
	if err != nil {
		if errors.Is(err, ErrMissingGlyphMetric) {
			return nil, err
		}
		return nil, core.WrapError(fmt.Errorf("%w: %v", ErrMissingGlyphMetric, err), core.EMISSING,
			"glyph %v", spec)
	}
	if g == nil {
		tracer().Errorf("catalog has no metrics for %v", spec)
		return nil, core.WrapError(ErrMissingGlyphMetric, core.EMISSING, "glyph %v", spec)
	}
	return g, nil
}

// LookupImage gets an image glyph from a catalog, with the same error
// conventions as LookupGlyph.
func LookupImage(cat Catalog, spec ImageGlyphSpec) (*Glyph, error) {
	if cat == nil {
		return nil, core.WrapError(ErrMissingGlyphMetric, core.EMISSING, "no glyph catalog")
	}
	g, err := cat.Image(spec)
	if err != nil {
		if errors.Is(err, ErrMissingGlyphMetric) {
			return nil, err
		}
		return nil, core.WrapError(fmt.Errorf("%w: %v", ErrMissingGlyphMetric, err), core.EMISSING,
			"image %v", spec)
	}
	if g == nil {
		tracer().Errorf("catalog has no image %v", spec)
		return nil, core.WrapError(ErrMissingGlyphMetric, core.EMISSING, "image %v", spec)
	}
	return g, nil
}
