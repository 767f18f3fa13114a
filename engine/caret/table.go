package caret

import (
	"sort"

	"github.com/npillmayer/rubytext/engine/frame/layout"
)

// Table is a finished sequence of caret units, line by line. Source positions
// increase strictly over the whole table. A table is read-only and may be
// shared between goroutines.
type Table struct {
	units []CaretUnit
	lines []int // index of the first unit of each line
}

func newTable(lines [][]CaretUnit) *Table {
	t := &Table{lines: make([]int, len(lines))}
	for l, units := range lines {
		t.lines[l] = len(t.units)
		t.units = append(t.units, units...)
	}
	return t
}

// Units returns all units. Clients must not modify the result.
func (t *Table) Units() []CaretUnit {
	return t.units
}

// Len is the number of units.
func (t *Table) Len() int {
	return len(t.units)
}

// Unit returns unit #i.
func (t *Table) Unit(i int) CaretUnit {
	return t.units[i]
}

// Lines is the number of lines.
func (t *Table) Lines() int {
	return len(t.lines)
}

// LineUnits returns the units of line l, starting with its sentinel.
func (t *Table) LineUnits(l int) []CaretUnit {
	if l < 0 || l >= len(t.lines) {
		return nil
	}
	end := len(t.units)
	if l+1 < len(t.lines) {
		end = t.lines[l+1]
	}
	return t.units[t.lines[l]:end]
}

// UnitForSource returns the index of the unit for caret position pos of the
// source text. For positions inside a cluster, it is the cluster's unit.
// Positions past the end yield -1.
func (t *Table) UnitForSource(pos int) int {
	i := sort.Search(len(t.units), func(i int) bool {
		return t.units[i].SourceIndex() >= pos
	})
	if i == len(t.units) {
		return -1
	}
	return i
}

// UnitForDestination returns the index of the unit for caret position pos of
// the shaped text, or -1.
func (t *Table) UnitForDestination(pos int) int {
	inside := -1
	for i, u := range t.units {
		if u.DestinationIndex() == pos {
			return i
		}
		d := u.Destination
		if inside < 0 && !u.IsFirst() && pos >= d.Offset+d.Index && pos < d.Position() {
			inside = i
		}
	}
	return inside
}

// SourceToDestination maps a source caret position to the shaped text.
func (t *Table) SourceToDestination(pos int) (int, bool) {
	if i := t.UnitForSource(pos); i >= 0 {
		return t.units[i].DestinationIndex(), true
	}
	return 0, false
}

// DestinationToSource maps a caret position of the shaped text to the source.
func (t *Table) DestinationToSource(pos int) (int, bool) {
	if i := t.UnitForDestination(pos); i >= 0 {
		return t.units[i].SourceIndex(), true
	}
	return 0, false
}

// Next returns the unit after unit #i, staying at the last unit.
func (t *Table) Next(i int) int {
	if i+1 < len(t.units) {
		return i + 1
	}
	return len(t.units) - 1
}

// Prev returns the unit before unit #i, staying at the first unit.
func (t *Table) Prev(i int) int {
	if i > 0 {
		return i - 1
	}
	return 0
}

// CaretX returns the x position of the caret after unit #i on a placed line.
// Placements are matched by their source index. It returns false if none of
// the unit's characters is placed on hl.
func (t *Table) CaretX(hl *layout.HorizontalLayout, i int) (int, bool) {
	u := t.units[i]
	from, to, rtl := u.Source.Offset+u.Source.Index, u.Source.Offset+u.Source.Index+u.Source.Length, u.RTL
	before := u.IsFirst()
	if before { // caret before the first character of the line
		from, to = u.Source.Offset, u.Source.Offset+1
		if i+1 < len(t.units) && t.units[i+1].Line == u.Line {
			rtl = t.units[i+1].RTL
		}
	}
	x, found := 0, false
	cursor := hl.Cursor()
	for cursor.Next() {
		p := cursor.Placement()
		if p.Index < from || p.Index >= to {
			continue
		}
		left, right := p.VisualX(), p.VisualX()+p.Width()
		// the caret trails a character in reading direction, or leads it when before
		edge := right
		if rtl != before {
			edge = left
		}
		if !found || (edge > x) != (rtl != before) {
			x = edge
		}
		found = true
	}
	return x, found
}
