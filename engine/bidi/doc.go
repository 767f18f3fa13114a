/*
Package bidi splits text into directional tokens and resolves the reading
direction of each token.

This is not an implementation of the Unicode Bidi Algorithm (UAX#9). It is
a purpose-built subset which is sufficient for right-to-left scripts mixed with
Latin text and digits: letters of the right-to-left script read right-to-left,
Latin letters and all digits read left-to-right, and everything else takes the
direction of the dominant script unless it sits between Latin letters. A second
pass corrects brackets enclosing Latin-only content.

    tokens := bidi.Tokenize("ب (abc) ت", glyphing.Arabic)
    bidi.Resolve(tokens)
    visual := tokens.VisualOrder(0, 9, glyphing.LeftToRight)

Character classes and bracket properties are taken from
golang.org/x/text/unicode/bidi.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bidi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.bidi'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.bidi")
}
