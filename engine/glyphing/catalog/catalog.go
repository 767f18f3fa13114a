package catalog

import (
	"sync"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/core/dimen"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"golang.org/x/image/font"
)

// FaceFactory creates a font face for a pixel size and a style.
type FaceFactory func(size int, style glyphing.Style) (font.Face, error)

type faceKey struct {
	name  string
	size  int
	style glyphing.Style
}

type imageKey struct {
	source, name string
}

// FaceCatalog is a glyph catalog backed by x/image font faces.
// It is safe for concurrent use.
type FaceCatalog struct {
	sync.RWMutex
	factories map[string]FaceFactory
	faces     map[faceKey]font.Face
	glyphs    map[glyphing.FontGlyphSpec]*glyphing.Glyph
	images    map[imageKey][2]int
}

// New creates an empty catalog.
func New() *FaceCatalog {
	return &FaceCatalog{
		factories: make(map[string]FaceFactory),
		faces:     make(map[faceKey]font.Face),
		glyphs:    make(map[glyphing.FontGlyphSpec]*glyphing.Glyph),
		images:    make(map[imageKey][2]int),
	}
}

// RegisterFont makes a font available under a name, which glyph specs refer
// to in their Font field. Registering a name again replaces the factory and
// drops cached faces and glyphs of that name.
func (fc *FaceCatalog) RegisterFont(name string, factory FaceFactory) {
	fc.Lock()
	defer fc.Unlock()
	fc.factories[name] = factory
	for k := range fc.faces {
		if k.name == name {
			delete(fc.faces, k)
		}
	}
	for spec := range fc.glyphs {
		if spec.Font == name {
			delete(fc.glyphs, spec)
		}
	}
}

// RegisterImage tells the catalog about an image with its intrinsic size.
func (fc *FaceCatalog) RegisterImage(source, name string, w, h int) {
	fc.Lock()
	defer fc.Unlock()
	fc.images[imageKey{source, name}] = [2]int{w, h}
}

// Glyph returns the glyph for a spec, with metrics taken from the spec's font
// face at the spec's size.
func (fc *FaceCatalog) Glyph(spec glyphing.FontGlyphSpec) (*glyphing.Glyph, error) {
	fc.RLock()
	g, ok := fc.glyphs[spec]
	fc.RUnlock()
	if ok {
		return g, nil
	}
	fc.Lock()
	defer fc.Unlock()
	if g, ok = fc.glyphs[spec]; ok {
		return g, nil
	}
	face, err := fc.face(spec)
	if err != nil {
		return nil, err
	}
	bounds, advance, ok := face.GlyphBounds(spec.Char)
	if !ok {
		tracer().Errorf("font %q has no glyph for %q", spec.Font, spec.Char)
		return nil, core.WrapError(glyphing.ErrMissingGlyphMetric, core.EMISSING,
			"font %q has no glyph for %q", spec.Font, spec.Char)
	}
	metrics := face.Metrics()
	raw := float64(advance) / 64
	g = &glyphing.Glyph{
		Spec:     spec,
		Width:    dimen.Trunc(raw * spec.Scale()),
		Height:   (metrics.Ascent + metrics.Descent).Ceil(),
		RawWidth: raw,
		XMin:     bounds.Min.X.Floor(),
		XMax:     bounds.Max.X.Ceil(),
		YMin:     -bounds.Max.Y.Ceil(),
		YMax:     -bounds.Min.Y.Floor(),
	}
	fc.glyphs[spec] = g
	tracer().Debugf("catalog: new %v", g)
	return g, nil
}

// face returns the cached face for a spec. Callers must hold the write lock.
func (fc *FaceCatalog) face(spec glyphing.FontGlyphSpec) (font.Face, error) {
	key := faceKey{name: spec.Font, size: spec.Size, style: spec.Style}
	if face, ok := fc.faces[key]; ok {
		return face, nil
	}
	factory, ok := fc.factories[spec.Font]
	if !ok {
		return nil, core.WrapError(glyphing.ErrMissingGlyphMetric, core.EMISSING,
			"font %q not registered", spec.Font)
	}
	face, err := factory(spec.Size, spec.Style)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot create face for font %q", spec.Font)
	}
	fc.faces[key] = face
	return face, nil
}

// Image returns a glyph for a registered image, carrying its intrinsic size.
func (fc *FaceCatalog) Image(spec glyphing.ImageGlyphSpec) (*glyphing.Glyph, error) {
	fc.RLock()
	wh, ok := fc.images[imageKey{spec.Source, spec.Name}]
	fc.RUnlock()
	if !ok {
		return nil, core.WrapError(glyphing.ErrMissingGlyphMetric, core.EMISSING,
			"image %s/%s not registered", spec.Source, spec.Name)
	}
	return &glyphing.Glyph{
		Spec:     spec,
		Width:    wh[0],
		Height:   wh[1],
		RawWidth: float64(wh[0]),
		XMax:     wh[0],
		YMax:     wh[1],
	}, nil
}

var _ glyphing.Catalog = &FaceCatalog{}
