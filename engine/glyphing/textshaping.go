package glyphing

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/rubytext/core"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	}
	panic(core.Unreachable("direction %d", int(d)))
}

// Script identifies the scripts the engine has special handling for.
// Everything else is treated as Common.
type Script int

// Scripts with special treatment.
const (
	Common Script = iota
	Latin
	Arabic
	Hebrew
	Thai
	Han
)

var scriptNames = [...]string{
	Common: "Common",
	Latin:  "Latin",
	Arabic: "Arabic",
	Hebrew: "Hebrew",
	Thai:   "Thai",
	Han:    "Han",
}

func (s Script) String() string {
	if s < 0 || int(s) >= len(scriptNames) {
		return fmt.Sprintf("Script(%d)", int(s))
	}
	return scriptNames[s]
}

// ScriptByName returns the script for a name as used in configurations.
// Unknown names yield Common.
func ScriptByName(name string) Script {
	for s, n := range scriptNames {
		if n == name {
			return Script(s)
		}
	}
	return Common
}

// RangeTable returns the Unicode range table of a script, or nil for Common.
func (s Script) RangeTable() *unicode.RangeTable {
	switch s {
	case Common:
		return nil
	case Latin:
		return unicode.Latin
	case Arabic:
		return unicode.Arabic
	case Hebrew:
		return unicode.Hebrew
	case Thai:
		return unicode.Thai
	case Han:
		return unicode.Han
	}
	panic(core.Unreachable("script %d", int(s)))
}

// IsClustered is true for scripts where one user-perceived character may span
// several code-points, which a caret must never split.
func (s Script) IsClustered() bool {
	return s == Thai || s == Arabic
}

// Direction returns the inherent reading direction of a script.
func (s Script) Direction() Direction {
	if s == Arabic || s == Hebrew {
		return RightToLeft
	}
	return LeftToRight
}

// ScriptOf returns the script of a rune.
func ScriptOf(r rune) Script {
	switch {
	case unicode.Is(unicode.Arabic, r):
		return Arabic
	case unicode.Is(unicode.Hebrew, r):
		return Hebrew
	case unicode.Is(unicode.Thai, r):
		return Thai
	case unicode.Is(unicode.Han, r):
		return Han
	case unicode.Is(unicode.Latin, r):
		return Latin
	}
	return Common
}
