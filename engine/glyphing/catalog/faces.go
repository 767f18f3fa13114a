package catalog

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/engine/glyphing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FixedFace returns a factory which always returns face, regardless of size
// and style. Useful for bitmap faces like basicfont.Face7x13.
func FixedFace(face font.Face) FaceFactory {
	return func(int, glyphing.Style) (font.Face, error) {
		return face, nil
	}
}

// OpenType returns a factory for faces of a parsed OpenType font.
// Styles are ignored, a font file is one style only.
func OpenType(otf *opentype.Font) FaceFactory {
	return func(size int, _ glyphing.Style) (font.Face, error) {
		return opentype.NewFace(otf, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72, // 1pt = 1px
			Hinting: font.HintingNone,
		})
	}
}

var goFonts struct {
	once  sync.Once
	fonts [4]*opentype.Font
	err   error
}

// GoFamily returns a factory for the Go fonts bundled with x/image,
// selecting regular, bold, italic or bold italic by style.
func GoFamily() FaceFactory {
	goFonts.once.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			if goFonts.fonts[i], goFonts.err = opentype.Parse(ttf); goFonts.err != nil {
				return
			}
		}
	})
	return func(size int, style glyphing.Style) (font.Face, error) {
		if goFonts.err != nil {
			return nil, goFonts.err
		}
		i := 0
		if style&glyphing.Bold != 0 {
			i++
		}
		if style&glyphing.Italic != 0 {
			i += 2
		}
		return OpenType(goFonts.fonts[i])(size, style)
	}
}

// LocateFace searches the system font directories for a font file (e.g.
// "DejaVuSans.ttf") and returns a factory for it.
func LocateFace(filename string) (FaceFactory, error) {
	path, err := findfont.Find(filename)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font file %q not found", filename)
	}
	tracer().Infof("located font %q at %s", filename, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font file %s", path)
	}
	return OpenType(otf), nil
}
