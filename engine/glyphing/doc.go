/*
Package glyphing describes what to draw: glyph specifications, the groups of
main glyphs and ruby glyphs which must not be split by a line break, and the
logical lines made from such groups.

Glyph specifications are pure identity values. They do not know where they will
be drawn, and they are comparable, so external glyph catalogs may use them as
cache keys. Metrics are looked up from a Catalog, which is an external
collaborator; packages catalog and monospace provide implementations.

A logical line (type SplitDenyGlyphSpecs) is produced once per paragraph
segmentation pass and consumed once by the line assembly in package inline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.glyphs")
}
