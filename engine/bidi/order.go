package bidi

import (
	"fmt"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/engine/glyphing"
)

// Run is a maximal span of runes sharing one resolved direction.
// Start and End are rune positions, End is exclusive.
type Run struct {
	Start, End int
	RTL        bool
}

func (r Run) String() string {
	if r.RTL {
		return fmt.Sprintf("R[%d:%d]", r.Start, r.End)
	}
	return fmt.Sprintf("L[%d:%d]", r.Start, r.End)
}

// Runs returns the bidi runs of resolved tokens.
func (ts Tokens) Runs() []Run {
	var runs []Run
	for _, t := range ts {
		if n := len(runs); n > 0 && runs[n-1].RTL == t.RTL {
			runs[n-1].End = t.End()
			continue
		}
		runs = append(runs, Run{Start: t.Start, End: t.End(), RTL: t.RTL})
	}
	return runs
}

// VisualOrder returns, for each rune position in [from, to), its visual
// position relative to from. With base direction left-to-right every
// right-to-left run is reversed. With base direction right-to-left the whole
// range is reversed, then left-to-right runs are restored.
func (ts Tokens) VisualOrder(from, to int, base glyphing.Direction) []int {
	return VisualOrder(from, to, base, ts.RightToLeftAt)
}

// VisualOrder computes a visual order for [from, to) from a direction oracle.
// It is the reordering used by Tokens.VisualOrder, open to clients with other
// sources of direction information.
func VisualOrder(from, to int, base glyphing.Direction, rtlAt func(int) bool) []int {
	n := to - from
	if n <= 0 {
		return nil
	}
	order := make([]int, n) // visual position -> logical position
	var reversed bool
	switch base {
	case glyphing.LeftToRight:
		reversed = false
		for v := range order {
			order[v] = from + v
		}
	case glyphing.RightToLeft:
		reversed = true
		for v := range order {
			order[v] = to - 1 - v
		}
	default:
		panic(core.Unreachable("direction %d", int(base)))
	}
	// reverse maximal runs which read against the base direction
	for v := 0; v < n; {
		if rtlAt(order[v]) == reversed {
			v++
			continue
		}
		w := v
		for w < n && rtlAt(order[w]) != reversed {
			w++
		}
		reverse(order[v:w])
		v = w
	}
	visual := make([]int, n) // logical position -> visual position
	for v, l := range order {
		visual[l-from] = v
	}
	return visual
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
