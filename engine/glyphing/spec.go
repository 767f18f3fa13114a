package glyphing

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image/color"
	"math"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/dimen"
)

// GlyphSpec is the identity of something drawable: a character in a font,
// or an inline image. The set of implementations is closed:
// FontGlyphSpec, ScriptGlyphSpec and ImageGlyphSpec.
type GlyphSpec interface {
	fmt.Stringer
	isGlyphSpec()
}

// Style is a bit-set of font style flags.
type Style uint8

// Font style flags.
const (
	Regular Style = 0
	Bold    Style = 1 << iota
	Italic
	Underline
)

// FontGlyphSpec identifies a character drawn in a font at a size and style.
// It is comparable and may be used as a map key.
type FontGlyphSpec struct {
	Char     rune       // the character to draw
	Font     string     // identity of the font (family name or resource key)
	Size     int        // font size in px
	Style    Style      // style flags
	Color    color.RGBA // color override, valid if HasColor
	HasColor bool       // is there a color override?
	HScale   float64    // horizontal scale, 1 means unscaled
}

// NewFontGlyphSpec creates a glyph spec for an unstyled, unscaled character.
func NewFontGlyphSpec(ch rune, font string, size int) FontGlyphSpec {
	return FontGlyphSpec{Char: ch, Font: font, Size: size, HScale: 1}
}

func (FontGlyphSpec) isGlyphSpec() {}

// WithChar returns a copy of the spec for another character.
func (fs FontGlyphSpec) WithChar(ch rune) FontGlyphSpec {
	fs.Char = ch
	return fs
}

// Scale returns the horizontal scale, treating an unset scale as 1.
func (fs FontGlyphSpec) Scale() float64 {
	if fs.HScale == 0 {
		return 1
	}
	return fs.HScale
}

// Equals compares two font glyph specs by value.
func (fs FontGlyphSpec) Equals(other FontGlyphSpec) bool {
	return fs == other
}

// Hash returns a hash value which is stable across program runs.
func (fs FontGlyphSpec) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(fs.Char))
	h.Write(buf[:4])
	h.Write([]byte(fs.Font))
	binary.LittleEndian.PutUint32(buf[:4], uint32(fs.Size))
	h.Write(buf[:4])
	h.Write([]byte{byte(fs.Style)})
	if fs.HasColor {
		h.Write([]byte{1, fs.Color.R, fs.Color.G, fs.Color.B, fs.Color.A})
	} else {
		h.Write([]byte{0})
	}
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(fs.Scale()))
	h.Write(buf[:])
	return h.Sum64()
}

func (fs FontGlyphSpec) String() string {
	return fmt.Sprintf("%q[%s/%dpx/%d]", fs.Char, fs.Font, fs.Size, fs.Style)
}

// --- Script glyphs ---------------------------------------------------------

// ScriptGlyphSpec is a font glyph of a script which needs a fixed pixel
// adjustment of its drawing position, e.g. Thai above-base marks.
type ScriptGlyphSpec struct {
	FontGlyphSpec
	Script           Script
	OffsetX, OffsetY int // in px, already scaled to Size
}

// Offsets at the base layout size, per script. Y grows downwards.
var scriptBaseOffsets = map[Script]dimen.Point{
	Thai:   {X: 0, Y: -3},
	Arabic: {X: 0, Y: 2},
	Hebrew: {X: 0, Y: 1},
}

// NewScriptGlyphSpec wraps a font glyph spec with the offsets of script.
// Offsets are defined for a font size of baseLayoutSize and scaled linearly to
// the spec's size.
func NewScriptGlyphSpec(base FontGlyphSpec, script Script, baseLayoutSize int) ScriptGlyphSpec {
	sgs := ScriptGlyphSpec{FontGlyphSpec: base, Script: script}
	if baseLayoutSize <= 0 {
		return sgs
	}
	if off, ok := scriptBaseOffsets[script]; ok {
		ratio := float64(base.Size) / float64(baseLayoutSize)
		sgs.OffsetX = dimen.Trunc(float64(off.X) * ratio)
		sgs.OffsetY = dimen.Trunc(float64(off.Y) * ratio)
	}
	return sgs
}

func (ScriptGlyphSpec) isGlyphSpec() {}

func (sgs ScriptGlyphSpec) String() string {
	return fmt.Sprintf("%s{%s%+d%+d}", sgs.FontGlyphSpec, sgs.Script, sgs.OffsetX, sgs.OffsetY)
}

// --- Images ----------------------------------------------------------------

// SizeRule tells how an image's width and height are determined.
type SizeRule int

// Size rules for inline images.
const (
	SizeFixed    SizeRule = iota // W and H are pixels
	SizeRelative                 // W and H are multiples of the reference glyph's unit
)

// ImageRefScale is applied to the reference glyph's raw width to get the
// unit of relatively sized images.
const ImageRefScale = 0.9

// ImageSizing is the width/height rule of an inline image.
type ImageSizing struct {
	Rule SizeRule
	W, H float64
}

// ImageGlyphSpec identifies an inline image. Reference is a font glyph whose
// raw width serves as the size unit for relatively sized images.
type ImageGlyphSpec struct {
	Source    string
	Name      string
	Sizing    ImageSizing
	Reference FontGlyphSpec
}

func (ImageGlyphSpec) isGlyphSpec() {}

func (is ImageGlyphSpec) String() string {
	return fmt.Sprintf("img[%s:%s]", is.Source, is.Name)
}

// Extent computes the pixel size of an image, given the raw width of its
// reference glyph.
func (is ImageGlyphSpec) Extent(refRawWidth float64) (w, h int) {
	switch is.Sizing.Rule {
	case SizeFixed:
		return dimen.Trunc(is.Sizing.W), dimen.Trunc(is.Sizing.H)
	case SizeRelative:
		unit := float64(dimen.Trunc(refRawWidth * ImageRefScale))
		return dimen.Trunc(unit * is.Sizing.W), dimen.Trunc(unit * is.Sizing.H)
	}
	panic(core.Unreachable("image size rule %d", int(is.Sizing.Rule)))
}

// --- Placement specs -------------------------------------------------------

// GlyphPlacementSpec is a glyph spec at a position of a logical line.
type GlyphPlacementSpec struct {
	Spec        GlyphSpec
	LeftMargin  int     // px
	RightMargin int     // px
	VOffset     int     // vertical offset in px, positive is upwards
	Index       int     // 0-based index into the source text
	BaseSpacing float64 // fraction of glyph width or of font size, see SpacingUnit
	ZeroWidth   bool    // occupies no space, but keeps a caret slot
}

// MainGlyphPlacementSpec is the placement spec of a main (non-ruby) glyph.
type MainGlyphPlacementSpec = GlyphPlacementSpec

// FontSpec returns the font glyph spec of a placement. For images it returns
// the reference glyph.
func (ps GlyphPlacementSpec) FontSpec() FontGlyphSpec {
	switch s := ps.Spec.(type) {
	case FontGlyphSpec:
		return s
	case ScriptGlyphSpec:
		return s.FontGlyphSpec
	case ImageGlyphSpec:
		return s.Reference
	}
	panic(core.Unreachable("glyph spec type %T", ps.Spec))
}

// IsImage is true for inline images.
func (ps GlyphPlacementSpec) IsImage() bool {
	_, ok := ps.Spec.(ImageGlyphSpec)
	return ok
}
