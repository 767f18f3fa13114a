/*
Package monospace implements a glyph catalog for monospace output.

Every character occupies one or two cells, depending on its East Asian width
(Unicode UAX#11). The catalog is deterministic and needs no font files, which
makes it suitable for terminal-like rendering and for tests.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.glyphs")
}
