package caret

import (
	"errors"
	"fmt"

	"github.com/npillmayer/rubytext/core"
)

// ErrBuilderFinished is returned when using a builder after Finish.
var ErrBuilderFinished = errors.New("caret builder already finished")

// TextInfo is a span of text: Length characters at Index, relative to a
// line starting at Offset.
type TextInfo struct {
	Index, Length, Offset int
}

// Position is the caret position after the span.
func (ti TextInfo) Position() int {
	return ti.Offset + ti.Index + ti.Length
}

// CaretUnit pairs a span of the source text with the corresponding span of
// the shaped text.
type CaretUnit struct {
	Source      TextInfo
	Destination TextInfo
	RTL         bool
	Line        int
}

// SourceIndex is the caret position in the source text after the unit.
func (cu CaretUnit) SourceIndex() int {
	return cu.Source.Position()
}

// DestinationIndex is the caret position in the shaped text after the unit.
func (cu CaretUnit) DestinationIndex() int {
	return cu.Destination.Position()
}

// IsFirst is true for the sentinel unit at the start of a line.
func (cu CaretUnit) IsFirst() bool {
	return cu.Source.Index == -1
}

func (cu CaretUnit) String() string {
	if cu.IsFirst() {
		return fmt.Sprintf("⟨first %d|%d⟩", cu.Source.Offset, cu.Destination.Offset)
	}
	return fmt.Sprintf("⟨%d+%d→%d+%d⟩", cu.Source.Offset+cu.Source.Index, cu.Source.Length,
		cu.Destination.Offset+cu.Destination.Index, cu.Destination.Length)
}

func firstUnit(srcOffset, dstOffset, line int) CaretUnit {
	return CaretUnit{
		Source:      TextInfo{Index: -1, Length: 1, Offset: srcOffset},
		Destination: TextInfo{Index: -1, Length: 1, Offset: dstOffset},
		Line:        line,
	}
}

// Builder accumulates caret units line by line. The zero value is not
// usable, create builders with NewBuilder. Builders are not safe for
// concurrent use.
//
// Units of the line in progress are buffered until the next line is started
// or the builder is finished. GetAllCaretUnits reads without flushing, Finish
// flushes and hands out the table, after which the builder is consumed.
type Builder struct {
	lines       [][]CaretUnit
	current     []CaretUnit
	srcOffset   int
	dstOffset   int
	srcEnd      int // extent of the current line, relative to the offsets
	dstEnd      int
	line        int
	finished    bool
	initialized bool
}

// NewBuilder creates an initialized builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Initialize()
	return b
}

// Initialize drops all units and makes the builder usable again, even after
// Finish.
func (b *Builder) Initialize() {
	b.lines = nil
	b.current = nil
	b.srcOffset, b.dstOffset = 0, 0
	b.srcEnd, b.dstEnd = 0, 0
	b.line = 0
	b.finished = false
	b.initialized = true
}

func (b *Builder) check() error {
	if !b.initialized {
		return core.Error(core.EINVALID, "caret builder not initialized")
	}
	if b.finished {
		return ErrBuilderFinished
	}
	return nil
}

// AddFirstUnit starts a new line at the given source and destination offsets.
// The line in progress, if any, is flushed. The new line is seeded with a
// sentinel unit.
func (b *Builder) AddFirstUnit(srcOffset, dstOffset int) error {
	if err := b.check(); err != nil {
		return err
	}
	if len(b.current) > 0 {
		b.lines = append(b.lines, b.current)
		b.line++
	}
	b.srcOffset, b.dstOffset = srcOffset, dstOffset
	b.srcEnd, b.dstEnd = 0, 0
	b.current = []CaretUnit{firstUnit(srcOffset, dstOffset, b.line)}
	return nil
}

// AddUnit adds a unit for spans relative to the current line. The builder sets
// the offsets. Source positions have to increase strictly within a line.
func (b *Builder) AddUnit(src, dst TextInfo, rtl bool) error {
	if err := b.check(); err != nil {
		return err
	}
	if len(b.current) == 0 {
		b.current = []CaretUnit{firstUnit(b.srcOffset, b.dstOffset, b.line)}
	}
	src.Offset, dst.Offset = b.srcOffset, b.dstOffset
	unit := CaretUnit{Source: src, Destination: dst, RTL: rtl, Line: b.line}
	if last := b.current[len(b.current)-1]; unit.SourceIndex() <= last.SourceIndex() {
		tracer().Errorf("caret unit %v does not advance after %v", unit, last)
		return core.Error(core.EINVALID, "caret unit %v does not advance after %v", unit, last)
	}
	b.current = append(b.current, unit)
	if end := src.Index + src.Length; end > b.srcEnd {
		b.srcEnd = end
	}
	if end := dst.Index + dst.Length; end > b.dstEnd {
		b.dstEnd = end
	}
	return nil
}

// AddSimple adds a unit for a single character at line position index, which
// is shaped to position dstIndex.
func (b *Builder) AddSimple(index, dstIndex int, rtl bool) error {
	return b.AddUnit(TextInfo{Index: index, Length: 1}, TextInfo{Index: dstIndex, Length: 1}, rtl)
}

// AddClusters adds one unit per cluster. Cluster positions are relative to
// start, a position in the current line. visual maps line positions to
// shaping order; a cluster's destination starts at the smallest visual
// position of its characters.
func (b *Builder) AddClusters(start int, clusters []Cluster, visual []int) error {
	for _, c := range clusters {
		from := start + c.Start
		dst := from
		if from < len(visual) {
			dst = visual[from]
			for k := from + 1; k < from+c.Length && k < len(visual); k++ {
				if visual[k] < dst {
					dst = visual[k]
				}
			}
		}
		err := b.AddUnit(TextInfo{Index: from, Length: c.Length}, TextInfo{Index: dst, Length: c.Length}, c.RTL)
		if err != nil {
			return err
		}
	}
	return nil
}

// AddLineBreak ends the current line at a break character and starts the next
// one past it.
func (b *Builder) AddLineBreak() error {
	return b.AddFirstUnit(b.srcOffset+b.srcEnd+1, b.dstOffset+b.dstEnd+1)
}

// GetAllCaretUnits returns all units added so far, including the line in
// progress, without flushing anything. If nothing has been added, it returns a
// single sentinel unit at position 0. After Finish it returns
// ErrBuilderFinished.
func (b *Builder) GetAllCaretUnits() ([]CaretUnit, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	n := len(b.current)
	for _, l := range b.lines {
		n += len(l)
	}
	if n == 0 {
		return []CaretUnit{firstUnit(0, 0, 0)}, nil
	}
	units := make([]CaretUnit, 0, n)
	for _, l := range b.lines {
		units = append(units, l...)
	}
	return append(units, b.current...), nil
}

// Finish flushes the line in progress and returns the caret table.
// The builder is consumed and has to be initialized again to be reused.
func (b *Builder) Finish() (*Table, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	if len(b.current) > 0 {
		b.lines = append(b.lines, b.current)
	}
	if len(b.lines) == 0 {
		b.lines = [][]CaretUnit{{firstUnit(0, 0, 0)}}
	}
	table := newTable(b.lines)
	b.lines, b.current = nil, nil
	b.finished = true
	tracer().Debugf("caret table with %d units in %d lines", table.Len(), table.Lines())
	return table, nil
}
