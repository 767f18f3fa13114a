package monospace

import (
	"errors"
	"testing"

	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonospaceWidths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.glyphs")
	defer teardown()
	//
	cat := New(0, nil)
	latin, err := cat.Glyph(glyphing.NewFontGlyphSpec('a', "mono", 20))
	require.NoError(t, err)
	wide, err := cat.Glyph(glyphing.NewFontGlyphSpec('漢', "mono", 20))
	require.NoError(t, err)
	assert.Equal(t, 20, latin.Height)
	assert.Greater(t, wide.Width, latin.Width)
	assert.Equal(t, 2*latin.Width, wide.Width)
	assert.Equal(t, latin.Height, latin.YMax-latin.YMin)
}

func TestMonospaceScale(t *testing.T) {
	cat := New(10, nil)
	spec := glyphing.NewFontGlyphSpec('a', "mono", 20)
	spec.HScale = 0.55
	g, err := cat.Glyph(spec)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Width) // 5.5 truncated
	assert.Equal(t, float64(10), g.RawWidth)
}

func TestMonospaceMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rubytext.glyphs")
	defer teardown()
	//
	cat := New(10, nil)
	_, err := cat.Glyph(glyphing.NewFontGlyphSpec('\n', "mono", 20))
	assert.True(t, errors.Is(err, glyphing.ErrMissingGlyphMetric))
	_, err = cat.Image(glyphing.ImageGlyphSpec{Source: "s", Name: "n"})
	assert.True(t, errors.Is(err, glyphing.ErrMissingGlyphMetric))
	cat.RegisterImage("s", "n", 30, 40)
	img, err := cat.Image(glyphing.ImageGlyphSpec{Source: "s", Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, 30, img.Width)
}
