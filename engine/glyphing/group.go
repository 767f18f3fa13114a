package glyphing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/option"
)

// ErrEmptyGroup is returned when creating a group without main glyphs.
var ErrEmptyGroup = errors.New("glyph group without main glyphs")

// ErrEmptyLine is returned when creating a logical line without groups.
var ErrEmptyLine = errors.New("logical line without glyph groups")

// GlyphSpecGroup is a run of main glyphs with zero or more attached ruby
// glyphs. A group is never split by a line break.
type GlyphSpecGroup struct {
	mains      []MainGlyphPlacementSpec
	rubies     []FontGlyphSpec
	rubyOffset option.Float64T
	rubyScale  option.Float64T
}

// GroupOption sets an optional property of a group.
type GroupOption func(*GlyphSpecGroup)

// WithRubyOffset overrides the ruby offset factor of a group.
func WithRubyOffset(f float64) GroupOption {
	return func(g *GlyphSpecGroup) {
		g.rubyOffset = option.SomeFloat64(f)
	}
}

// WithRubyScale overrides the ruby scale factor of a group.
func WithRubyScale(f float64) GroupOption {
	return func(g *GlyphSpecGroup) {
		g.rubyScale = option.SomeFloat64(f)
	}
}

// NewGlyphSpecGroup creates a group of main glyphs and rubies.
// It is an error to create a group without main glyphs.
func NewGlyphSpecGroup(mains []MainGlyphPlacementSpec, rubies []FontGlyphSpec,
	opts ...GroupOption) (*GlyphSpecGroup, error) {
	//
	if len(mains) == 0 {
		return nil, core.WrapError(ErrEmptyGroup, core.EINVALID, "group with %d rubies", len(rubies))
	}
	g := &GlyphSpecGroup{
		rubyOffset: option.Float64(),
		rubyScale:  option.Float64(),
	}
	if len(rubies) == 0 && len(mains) == 1 {
		g.mains = mains[:1:1]
	} else {
		g.mains = append(make([]MainGlyphPlacementSpec, 0, len(mains)), mains...)
	}
	if len(rubies) > 0 {
		g.rubies = append(make([]FontGlyphSpec, 0, len(rubies)), rubies...)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Single creates the minimal group of one main glyph without rubies.
func Single(main MainGlyphPlacementSpec) *GlyphSpecGroup {
	return &GlyphSpecGroup{
		mains:      []MainGlyphPlacementSpec{main},
		rubyOffset: option.Float64(),
		rubyScale:  option.Float64(),
	}
}

// Mains returns the main glyphs of a group. Clients must not modify the result.
func (g *GlyphSpecGroup) Mains() []MainGlyphPlacementSpec {
	return g.mains
}

// Rubies returns the ruby glyphs of a group. Clients must not modify the result.
func (g *GlyphSpecGroup) Rubies() []FontGlyphSpec {
	return g.rubies
}

// MainsCount is the number of main glyphs.
func (g *GlyphSpecGroup) MainsCount() int {
	return len(g.mains)
}

// HasRubies is true if at least one ruby glyph is attached to the group.
func (g *GlyphSpecGroup) HasRubies() bool {
	return len(g.rubies) > 0
}

// RubyOffset is the group's ruby offset override, possibly None.
func (g *GlyphSpecGroup) RubyOffset() option.Float64T {
	return g.rubyOffset
}

// RubyScale is the group's ruby scale override, possibly None.
func (g *GlyphSpecGroup) RubyScale() option.Float64T {
	return g.rubyScale
}

// SourceRange returns the smallest and largest source text index of the
// group's main glyphs.
func (g *GlyphSpecGroup) SourceRange() (from, to int) {
	from, to = g.mains[0].Index, g.mains[0].Index
	for _, m := range g.mains[1:] {
		if m.Index < from {
			from = m.Index
		}
		if m.Index > to {
			to = m.Index
		}
	}
	return
}

func (g *GlyphSpecGroup) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, m := range g.mains {
		b.WriteString(m.Spec.String())
	}
	if len(g.rubies) > 0 {
		b.WriteString(" ^")
		for _, r := range g.rubies {
			b.WriteRune(r.Char)
		}
	}
	b.WriteByte('}')
	return b.String()
}

// --- Logical lines ---------------------------------------------------------

// SplitDenyGlyphSpecs is a logical line: the full, unbroken sequence of
// groups of a paragraph. It is immutable after construction.
type SplitDenyGlyphSpecs struct {
	groups     []*GlyphSpecGroup
	MainsCount int // sum of the groups' main counts
}

// NewSplitDenyGlyphSpecs creates a logical line from groups.
// It is an error to create a line without groups; nil groups are invalid, too.
func NewSplitDenyGlyphSpecs(groups ...*GlyphSpecGroup) (*SplitDenyGlyphSpecs, error) {
	if len(groups) == 0 {
		return nil, core.WrapError(ErrEmptyLine, core.EINVALID, "cannot create logical line")
	}
	line := &SplitDenyGlyphSpecs{
		groups: append(make([]*GlyphSpecGroup, 0, len(groups)), groups...),
	}
	for i, g := range groups {
		if g == nil || len(g.mains) == 0 {
			return nil, core.WrapError(ErrEmptyGroup, core.EINVALID, "group #%d of logical line", i)
		}
		line.MainsCount += len(g.mains)
	}
	return line, nil
}

// Groups returns the groups of a line. Clients must not modify the result.
func (line *SplitDenyGlyphSpecs) Groups() []*GlyphSpecGroup {
	return line.groups
}

// Len returns the number of groups.
func (line *SplitDenyGlyphSpecs) Len() int {
	return len(line.groups)
}

// Group returns group #i.
func (line *SplitDenyGlyphSpecs) Group(i int) *GlyphSpecGroup {
	return line.groups[i]
}

// Tail returns the logical line starting at group #from, or nil if there are
// no groups left.
func (line *SplitDenyGlyphSpecs) Tail(from int) *SplitDenyGlyphSpecs {
	if from <= 0 {
		return line
	}
	if from >= len(line.groups) {
		return nil
	}
	tail, _ := NewSplitDenyGlyphSpecs(line.groups[from:]...)
	return tail
}

// SourceRange returns the smallest and largest source text index of the line.
func (line *SplitDenyGlyphSpecs) SourceRange() (from, to int) {
	from, to = line.groups[0].SourceRange()
	for _, g := range line.groups[1:] {
		f, t := g.SourceRange()
		if f < from {
			from = f
		}
		if t > to {
			to = t
		}
	}
	return
}

func (line *SplitDenyGlyphSpecs) String() string {
	var b strings.Builder
	for _, g := range line.groups {
		b.WriteString(g.String())
	}
	return fmt.Sprintf("line(%d mains)%s", line.MainsCount, b.String())
}

// LineFromText creates a logical line without rubies, one group per rune.
// Source indices start at startIndex. Text must not be empty.
func LineFromText(text string, font FontGlyphSpec, startIndex int, baseSpacing float64) (*SplitDenyGlyphSpecs, error) {
	groups := make([]*GlyphSpecGroup, 0, len(text))
	i := startIndex
	for _, r := range text {
		groups = append(groups, Single(MainGlyphPlacementSpec{
			Spec:        font.WithChar(r),
			Index:       i,
			BaseSpacing: baseSpacing,
		}))
		i++
	}
	tracer().Debugf("logical line from text with %d groups", len(groups))
	return NewSplitDenyGlyphSpecs(groups...)
}
