/*
Package catalog implements a glyph catalog on top of golang.org/x/image font faces.

Fonts are registered by name together with a FaceFactory, which creates a
font.Face for a given pixel size and style. Glyph metrics are taken from the
faces and cached per glyph spec, so repeated lookups are O(1).

    cat := catalog.New()
    cat.RegisterFont("Go", catalog.GoFamily())
    g, err := cat.Glyph(glyphing.NewFontGlyphSpec('x', "Go", 16))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package catalog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.glyphs")
}
