package inline

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/glyphing"
)

// Assembler turns logical lines into rendering elements.
//
// Assembling allocates its buffers per call, therefore an Assembler may be
// shared between goroutines, given its catalog is safe for concurrent use.
type Assembler struct {
	Catalog glyphing.Catalog
	Options Options
}

// NewAssembler creates an assembler for a glyph catalog.
func NewAssembler(cat glyphing.Catalog, opts Options) *Assembler {
	return &Assembler{Catalog: cat, Options: opts}
}

// AssembledLine holds the elements of one logical line. GroupEnds[i] is the
// index of the first element after group #i; lines may only be broken there.
type AssembledLine struct {
	Source    *glyphing.SplitDenyGlyphSpecs
	Elements  []Element
	GroupEnds []int
}

// Group returns the elements of group #i.
func (al *AssembledLine) Group(i int) []Element {
	from := 0
	if i > 0 {
		from = al.GroupEnds[i-1]
	}
	return al.Elements[from:al.GroupEnds[i]]
}

// GroupAdvance is the horizontal space of group #i.
func (al *AssembledLine) GroupAdvance(i int) int {
	w := 0
	for _, el := range al.Group(i) {
		w += el.Metrics().Advance()
	}
	return w
}

// Width is the horizontal space of the whole line.
func (al *AssembledLine) Width() int {
	w := 0
	for _, el := range al.Elements {
		w += el.Metrics().Advance()
	}
	return w
}

// Assembly is the result of assembling a sequence of logical lines.
type Assembly struct {
	Lines     []*AssembledLine
	HalfWidth *hashset.Set // source indices set in half width, may be nil
}

// Sources returns the logical lines an assembly was made from.
func (asm *Assembly) Sources() []*glyphing.SplitDenyGlyphSpecs {
	src := make([]*glyphing.SplitDenyGlyphSpecs, len(asm.Lines))
	for i, l := range asm.Lines {
		src[i] = l.Source
	}
	return src
}

// Assemble creates rendering elements for logical lines. halfWidth holds
// source indices (int) of main glyphs to be set in half width; it may be nil.
//
// A glyph the catalog has no metrics for aborts assembly with an error
// wrapping glyphing.ErrMissingGlyphMetric.
func (a *Assembler) Assemble(lines []*glyphing.SplitDenyGlyphSpecs, halfWidth *hashset.Set) (*Assembly, error) {
	asm := &Assembly{
		Lines:     make([]*AssembledLine, 0, len(lines)),
		HalfWidth: halfWidth,
	}
	for i, line := range lines {
		if line == nil {
			return nil, core.WrapError(glyphing.ErrEmptyLine, core.EINVALID, "logical line #%d is nil", i)
		}
		al, err := a.assembleLine(line, halfWidth)
		if err != nil {
			tracer().Errorf("cannot assemble logical line #%d: %v", i, err)
			return nil, err
		}
		asm.Lines = append(asm.Lines, al)
	}
	tracer().Debugf("assembled %d logical lines", len(asm.Lines))
	return asm, nil
}

// ReAssemble assembles the logical lines of a previous assembly again, with a
// new set of half-width indices. The previous assembly is left untouched.
func (a *Assembler) ReAssemble(prev *Assembly, halfWidth *hashset.Set) (*Assembly, error) {
	if prev == nil {
		return nil, core.Error(core.EINVALID, "cannot re-assemble nil assembly")
	}
	return a.Assemble(prev.Sources(), halfWidth)
}

func (a *Assembler) assembleLine(line *glyphing.SplitDenyGlyphSpecs, halfWidth *hashset.Set) (*AssembledLine, error) {
	al := &AssembledLine{
		Source:    line,
		Elements:  make([]Element, 0, line.MainsCount),
		GroupEnds: make([]int, 0, line.Len()),
	}
	for _, group := range line.Groups() {
		mains := group.Mains()
		elements := make([]Element, len(mains))
		for i, m := range mains {
			el, err := a.mainElement(m, halfWidth)
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		if group.HasRubies() {
			if err := a.attachRubies(group, elements); err != nil {
				return nil, err
			}
		} else {
			for i := 0; i < len(elements)-1; i++ { // nothing after the last main
				elements[i].Metrics().Spacing = a.spacing(mains[i], elements[i].Metrics())
			}
		}
		al.Elements = append(al.Elements, elements...)
		al.GroupEnds = append(al.GroupEnds, len(al.Elements))
	}
	return al, nil
}

func (a *Assembler) mainElement(spec glyphing.MainGlyphPlacementSpec, halfWidth *hashset.Set) (Element, error) {
	metrics := ElementMetrics{
		Index:       spec.Index,
		LeftMargin:  spec.LeftMargin,
		RightMargin: spec.RightMargin,
		VOffset:     spec.VOffset,
		ZeroWidth:   spec.ZeroWidth,
		HalfWidth:   halfWidth != nil && halfWidth.Contains(spec.Index),
	}
	switch s := spec.Spec.(type) {
	case glyphing.FontGlyphSpec, glyphing.ScriptGlyphSpec:
		sgs, ok := s.(glyphing.ScriptGlyphSpec)
		if fs := spec.FontSpec(); !ok && glyphing.ScriptOf(fs.Char) == a.Options.Script {
			sgs, ok = a.Options.ScriptSpec(fs), true
		}
		if ok {
			metrics.ShiftX, metrics.ShiftY = sgs.OffsetX, sgs.OffsetY
		}
		g, err := glyphing.LookupGlyph(a.Catalog, spec.FontSpec())
		if err != nil {
			return nil, err
		}
		metrics.Width, metrics.Height = g.Width, g.Height
		return &FontElement{ElementMetrics: metrics, glyph: g, Spec: spec}, nil
	case glyphing.ImageGlyphSpec:
		ref, err := glyphing.LookupGlyph(a.Catalog, s.Reference)
		if err != nil {
			return nil, err
		}
		img, err := glyphing.LookupImage(a.Catalog, s)
		if err != nil {
			return nil, err
		}
		w, h := s.Extent(ref.RawWidth)
		metrics.Width, metrics.Height = w, h
		sized := &glyphing.Glyph{
			Spec:     s,
			Width:    w,
			Height:   h,
			RawWidth: img.RawWidth,
			XMax:     w,
			YMax:     h, // images sit on the baseline
		}
		return &ImageElement{ElementMetrics: metrics, glyph: sized, Source: s.Source, Name: s.Name}, nil
	case nil:
		return nil, core.Error(core.EINVALID, "glyph placement #%d without glyph spec", spec.Index)
	}
	panic(core.Unreachable("glyph spec type %T", spec.Spec))
}

// spacing computes the base spacing to the right of a main element.
func (a *Assembler) spacing(spec glyphing.MainGlyphPlacementSpec, m *ElementMetrics) int {
	if m.ZeroWidth || spec.BaseSpacing == 0 {
		return 0
	}
	switch a.Options.SpacingUnit {
	case GlyphWidth:
		return dimen.Trunc(spec.BaseSpacing * float64(m.InkWidth()))
	case FontSize:
		fs := spec.FontSpec()
		return dimen.Trunc(float64(dimen.Trunc(spec.BaseSpacing*float64(fs.Size))) * fs.Scale())
	}
	panic(core.Unreachable("spacing unit %d", int(a.Options.SpacingUnit)))
}

// attachRubies centers rubies and their parent mains against each other and
// pairs each ruby with a main element. The ruby block and the main block end
// up with equal width, up to truncation.
func (a *Assembler) attachRubies(group *glyphing.GlyphSpecGroup, mains []Element) error {
	rubySpecs := group.Rubies()
	rubies := make([]*glyphing.Glyph, len(rubySpecs))
	rubyWidth := 0
	for i, spec := range rubySpecs {
		g, err := glyphing.LookupGlyph(a.Catalog, spec)
		if err != nil {
			return err
		}
		rubies[i] = g
		rubyWidth += g.Width
	}
	mainWidth, mainHeight := 0, 0
	for _, el := range mains {
		m := el.Metrics()
		mainWidth += m.BlockWidth()
		mainHeight = dimen.Max(mainHeight, m.Height)
	}
	rubySpacing := 0
	if mainWidth > rubyWidth {
		rubySpacing = (mainWidth - rubyWidth) / (2 * len(rubies))
	} else {
		centering := (rubyWidth - mainWidth) / (2 * len(mains))
		for _, el := range mains {
			el.Metrics().Centering = centering
		}
	}
	yoffset := a.rubyOffset(group, mainHeight)
	// pair rubies with mains by their position within the group
	k, mainStart, mainEnd := 0, 0, mains[0].Metrics().BlockWidth()
	x := 0
	for _, g := range rubies {
		for x >= mainEnd && k < len(mains)-1 {
			k++
			mainStart = mainEnd
			mainEnd += mains[k].Metrics().BlockWidth()
		}
		m := mains[k].Metrics()
		sub := SubElement{
			Glyph:   g,
			Width:   g.Width + 2*rubySpacing,
			Spacing: rubySpacing,
			XOffset: x - mainStart,
			YOffset: yoffset,
		}
		m.Rubies = append(m.Rubies, sub)
		x += sub.Width
	}
	tracer().Debugf("group %v: main width %d, ruby width %d, ruby offset %d", group, mainWidth, rubyWidth, yoffset)
	return nil
}

// rubyOffset is the distance of the ruby baseline above the main baseline.
// Group overrides take precedence over the assembler's options.
func (a *Assembler) rubyOffset(group *glyphing.GlyphSpecGroup, mainHeight int) int {
	offset, hasOffset := group.RubyOffset().OrElse(a.Options.RubyOffset).Get()
	scale, hasScale := group.RubyScale().OrElse(a.Options.RubyScale).Get()
	if !hasOffset || !hasScale {
		return mainHeight
	}
	return dimen.Trunc(float64(mainHeight) * (1 + offset*scale))
}
