package caret

import (
	"strings"
	"unicode"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/parameters"
	"github.com/npillmayer/rubytext/engine/bidi"
	"github.com/npillmayer/rubytext/engine/glyphing"
	ubidi "golang.org/x/text/unicode/bidi"
)

// Config configures Map.
type Config struct {
	Script     glyphing.Script    // dominant script of the text
	Direction  glyphing.Direction // base direction of lines
	Segmenters map[glyphing.Script]ClusterSegmenter
}

// ConfigFromRegisters creates a configuration from typesetting parameters.
func ConfigFromRegisters(regs *parameters.TypesettingRegisters) Config {
	if regs == nil {
		return Config{}
	}
	cfg := Config{Script: glyphing.ScriptByName(regs.S(parameters.P_SCRIPT))}
	if regs.Direction() == ubidi.RightToLeft {
		cfg.Direction = glyphing.RightToLeft
	}
	return cfg
}

// Map creates the caret table for a text. Lines are separated by '\n'.
// Directions are resolved per line with the bidi package. Runs of clustered
// scripts are split by the segmenter configured for the script; without one,
// their characters are mapped one by one.
func Map(text string, cfg Config) (*Table, error) {
	segmenters := cfg.Segmenters
	if segmenters == nil {
		segmenters = DefaultSegmenters()
	}
	b := NewBuilder()
	for l, line := range strings.Split(text, "\n") {
		var err error
		if l == 0 {
			err = b.AddFirstUnit(0, 0)
		} else {
			err = b.AddLineBreak()
		}
		if err != nil {
			return nil, err
		}
		if err = mapLine(b, line, cfg, segmenters); err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "caret mapping of line %d failed", l)
		}
	}
	return b.Finish()
}

func mapLine(b *Builder, line string, cfg Config, segmenters map[glyphing.Script]ClusterSegmenter) error {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil
	}
	tokens := bidi.Tokenize(line, cfg.Script)
	bidi.Resolve(tokens)
	visual := tokens.VisualOrder(0, len(runes), cfg.Direction)
	for i := 0; i < len(runes); {
		script := glyphing.ScriptOf(runes[i])
		if seg, ok := segmenters[script]; ok && script.IsClustered() {
			j := i + 1
			for j < len(runes) && (glyphing.ScriptOf(runes[j]) == script || unicode.IsMark(runes[j])) {
				j++
			}
			if err := b.AddClusters(i, seg.Tokenize(runes[i:j]), visual); err != nil {
				return err
			}
			i = j
			continue
		}
		if err := b.AddSimple(i, visual[i], tokens.RightToLeftAt(i)); err != nil {
			return err
		}
		i++
	}
	return nil
}
