/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/rubytext/core/option"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'rubytext.core'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.core")
}

type TypesettingParameter int

const (
	none TypesettingParameter = iota
	P_TEXTDIRECTION
	P_SCRIPT
	P_SPACINGUNIT
	P_BASELAYOUTSIZE
	P_RUBYOFFSET
	P_RUBYSCALE
	P_LINEGAP
	P_HALFWIDTHLINEHEAD
	P_STOPPER
)

var parameterNames = [...]string{
	none:                "none",
	P_TEXTDIRECTION:     "P_TEXTDIRECTION",
	P_SCRIPT:            "P_SCRIPT",
	P_SPACINGUNIT:       "P_SPACINGUNIT",
	P_BASELAYOUTSIZE:    "P_BASELAYOUTSIZE",
	P_RUBYOFFSET:        "P_RUBYOFFSET",
	P_RUBYSCALE:         "P_RUBYSCALE",
	P_LINEGAP:           "P_LINEGAP",
	P_HALFWIDTHLINEHEAD: "P_HALFWIDTHLINEHEAD",
}

func (p TypesettingParameter) String() string {
	if p < 0 || p >= P_STOPPER {
		return "P_UNKNOWN"
	}
	return parameterNames[p]
}

// Values for P_SPACINGUNIT.
const (
	SpacingGlyphWidth = "glyph-width"
	SpacingFontSize   = "font-size"
)

type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

type TypesettingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

func NewTypesettingRegisters() *TypesettingRegisters {
	regs := &TypesettingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_TEXTDIRECTION] = bidi.LeftToRight // base direction of paragraphs
	p[P_SCRIPT] = "Arabic"                // script of right-to-left letters
	p[P_SPACINGUNIT] = SpacingGlyphWidth  // how base spacing is interpreted
	p[P_BASELAYOUTSIZE] = 32              // px, reference for script offsets
	p[P_RUBYOFFSET] = option.Float64()    // optional float
	p[P_RUBYSCALE] = option.Float64()     // optional float
	p[P_LINEGAP] = 0                      // px between visual lines
	p[P_HALFWIDTHLINEHEAD] = false        // compress opening punctuation at line start
}

func (regs *TypesettingRegisters) Begingroup() {
	regs.grouplevel++
}

func (regs *TypesettingRegisters) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

func (regs *TypesettingRegisters) Push(key TypesettingParameter, value interface{}) {
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil {
			g = &ParameterGroup{}
			g.params = make(map[TypesettingParameter]interface{})
			g.level = regs.grouplevel
			regs.groups = g
		} else {
			if regs.groups.level < regs.grouplevel {
				g = &ParameterGroup{}
				g.params = make(map[TypesettingParameter]interface{})
				g.level = regs.grouplevel
				g.next = regs.groups
				regs.groups = g
			} else {
				g = regs.groups
			}
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

func (regs *TypesettingRegisters) Get(key TypesettingParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

func (regs *TypesettingRegisters) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

func (regs *TypesettingRegisters) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

func (regs *TypesettingRegisters) B(key TypesettingParameter) bool {
	return regs.Get(key).(bool)
}

// F returns an optional float parameter.
func (regs *TypesettingRegisters) F(key TypesettingParameter) option.Float64T {
	return regs.Get(key).(option.Float64T)
}

// Direction returns the base text direction.
func (regs *TypesettingRegisters) Direction() bidi.Direction {
	return regs.Get(P_TEXTDIRECTION).(bidi.Direction)
}

// --- Configuration ----------------------------------------------------

// FromConfig creates typesetting registers from an application configuration.
// Keys not set in conf keep their defaults. Recognized keys are
//
//     layout.direction            "ltr" | "rtl"
//     layout.script               e.g. "Arabic"
//     layout.spacing-unit         "glyph-width" | "font-size"
//     layout.base-size            int
//     layout.ruby-offset          float
//     layout.ruby-scale           float
//     layout.line-gap             int
//     layout.halfwidth-linehead   bool
//
func FromConfig(conf schuko.Configuration) *TypesettingRegisters {
	regs := NewTypesettingRegisters()
	if conf == nil {
		return regs
	}
	if conf.IsSet("layout.direction") {
		switch strings.ToLower(conf.GetString("layout.direction")) {
		case "rtl", "right-to-left":
			regs.Push(P_TEXTDIRECTION, bidi.RightToLeft)
		case "ltr", "left-to-right":
			regs.Push(P_TEXTDIRECTION, bidi.LeftToRight)
		default:
			tracer().Errorf("config: unknown text direction %q", conf.GetString("layout.direction"))
		}
	}
	if conf.IsSet("layout.script") {
		regs.Push(P_SCRIPT, conf.GetString("layout.script"))
	}
	if conf.IsSet("layout.spacing-unit") {
		switch u := conf.GetString("layout.spacing-unit"); u {
		case SpacingGlyphWidth, SpacingFontSize:
			regs.Push(P_SPACINGUNIT, u)
		default:
			tracer().Errorf("config: unknown spacing unit %q", u)
		}
	}
	if conf.IsSet("layout.base-size") {
		if n := conf.GetInt("layout.base-size"); n > 0 {
			regs.Push(P_BASELAYOUTSIZE, n)
		}
	}
	regs.Push(P_RUBYOFFSET, floatFromConfig(conf, "layout.ruby-offset"))
	regs.Push(P_RUBYSCALE, floatFromConfig(conf, "layout.ruby-scale"))
	if conf.IsSet("layout.line-gap") {
		regs.Push(P_LINEGAP, conf.GetInt("layout.line-gap"))
	}
	if conf.IsSet("layout.halfwidth-linehead") {
		regs.Push(P_HALFWIDTHLINEHEAD, conf.GetBool("layout.halfwidth-linehead"))
	}
	return regs
}

// schuko configurations know no floats, we parse them from their string form.
func floatFromConfig(conf schuko.Configuration, key string) option.Float64T {
	if !conf.IsSet(key) {
		return option.Float64()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(conf.GetString(key)), 64)
	if err != nil {
		tracer().Errorf("config: %s is not a number: %v", key, err)
		return option.Float64()
	}
	return option.SomeFloat64(f)
}
