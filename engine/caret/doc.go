/*
Package caret maps between positions of a source text and positions of its
shaped, visually ordered form, for placing and moving a text cursor.

A caret table holds one caret unit per caret stop. Each line starts with a
sentinel unit, the caret slot before the first character. Simple scripts get
one unit per character, clustered scripts (Thai, Arabic) one unit per
user-perceived character, as a cursor must never be placed inside a cluster.

Tables are created with a Builder, or from plain text with Map:

    table, err := caret.Map("abc\nكتب", caret.Config{Script: glyphing.Arabic})
    i := table.UnitForSource(2)
    dst := table.Units()[i].DestinationIndex()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package caret

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rubytext.caret'.
func tracer() tracing.Trace {
	return tracing.Select("rubytext.caret")
}
