package inline

import (
	"fmt"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/option"
	"github.com/npillmayer/rubytext/core/parameters"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"golang.org/x/text/unicode/bidi"
)

// SpacingUnit selects how the base spacing of a glyph placement is interpreted.
type SpacingUnit int

// Spacing units.
const (
	GlyphWidth SpacingUnit = iota // fraction of the glyph's own width
	FontSize                      // fraction of the font size, scaled horizontally
)

func (u SpacingUnit) String() string {
	switch u {
	case GlyphWidth:
		return parameters.SpacingGlyphWidth
	case FontSize:
		return parameters.SpacingFontSize
	}
	panic(core.Unreachable("spacing unit %d", int(u)))
}

// Options are the layout options shared by all elements of an assembly.
type Options struct {
	SpacingUnit       SpacingUnit
	RubyOffset        option.Float64T // default ruby offset factor, may be None
	RubyScale         option.Float64T // default ruby scale factor, may be None
	BaseLayoutSize    int             // px, reference size for script offsets
	Direction         glyphing.Direction
	Script            glyphing.Script
	LineGap           int  // px between visual lines
	HalfWidthLineHead bool // set opening punctuation at line start in half width
}

// DefaultOptions returns the options of fresh typesetting registers.
func DefaultOptions() Options {
	return OptionsFromRegisters(nil)
}

// OptionsFromRegisters reads layout options from typesetting registers.
// regs may be nil, which yields defaults.
func OptionsFromRegisters(regs *parameters.TypesettingRegisters) Options {
	if regs == nil {
		regs = parameters.NewTypesettingRegisters()
	}
	opts := Options{
		RubyOffset:        regs.F(parameters.P_RUBYOFFSET),
		RubyScale:         regs.F(parameters.P_RUBYSCALE),
		BaseLayoutSize:    regs.N(parameters.P_BASELAYOUTSIZE),
		Script:            glyphing.ScriptByName(regs.S(parameters.P_SCRIPT)),
		LineGap:           regs.N(parameters.P_LINEGAP),
		HalfWidthLineHead: regs.B(parameters.P_HALFWIDTHLINEHEAD),
	}
	switch u := regs.S(parameters.P_SPACINGUNIT); u {
	case parameters.SpacingGlyphWidth:
		opts.SpacingUnit = GlyphWidth
	case parameters.SpacingFontSize:
		opts.SpacingUnit = FontSize
	default:
		panic(core.Unreachable("spacing unit %q", u))
	}
	switch d := regs.Direction(); d {
	case bidi.LeftToRight:
		opts.Direction = glyphing.LeftToRight
	case bidi.RightToLeft:
		opts.Direction = glyphing.RightToLeft
	default:
		panic(core.Unreachable("text direction %d", int(d)))
	}
	return opts
}

// ScriptSpec wraps a font glyph with the drawing offsets of the options'
// script, scaled from BaseLayoutSize to the glyph's size. Plain font glyphs of
// that script are assembled with these offsets.
func (opts Options) ScriptSpec(base glyphing.FontGlyphSpec) glyphing.ScriptGlyphSpec {
	return glyphing.NewScriptGlyphSpec(base, opts.Script, opts.BaseLayoutSize)
}

func (opts Options) String() string {
	return fmt.Sprintf("options{%s, %s, ruby %v×%v}", opts.SpacingUnit, opts.Direction,
		opts.RubyOffset, opts.RubyScale)
}
