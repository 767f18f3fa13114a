/*
Package inline assembles logical lines into placed glyphs.

Assembly turns the glyph groups of logical lines into rendering elements,
resolving glyph metrics from a catalog and computing spacing, ruby centering
and image sizes. Flowing breaks the assembled lines into visual lines
fitting a frame, never inside a group, and places the elements of each visual
line into a layout.HorizontalLayout, reordering right-to-left runs.

    asm := inline.NewAssembler(catalog, inline.OptionsFromRegisters(regs))
    assembly, err := asm.Assemble(lines, nil)
    ...
    layouts, err := asm.Flow(assembly, inline.Frame{Width: 400, Wrap: true}, tokens.RightToLeftAt)

All spacing arithmetic truncates towards zero.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.inline'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.inline")
}
