/*
Package layout holds placed glyphs of a single visual line.

A HorizontalLayout is filled during line assembly and is read-only afterwards.
Clients may restrict it to a display range, which confines extent queries and
iteration to a window of placements. This is used for virtualized rendering,
where only the visible part of a long line is drawn.

    cursor := hl.Cursor()
    for cursor.Next() {
        p := cursor.Placement()
        draw(p.Glyph, p.VisualX(), p.Y)
    }

Coordinates are pixels, with Y growing downwards. The Y coordinate of a
placement is its baseline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.layout'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.layout")
}
