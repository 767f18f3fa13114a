package caret

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/rubytext/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	ubidi "golang.org/x/text/unicode/bidi"
)

// Cluster is a user-perceived character spanning Length code-points,
// starting at Start.
type Cluster struct {
	Start, Length int
	RTL           bool
}

// ClusterSegmenter splits text of a clustered script into clusters.
type ClusterSegmenter interface {
	Tokenize(text []rune) []Cluster
}

var setupGraphemes sync.Once

// GraphemeSegmenter splits text into grapheme clusters (UAX#29).
// A segmenter is not safe for concurrent use.
type GraphemeSegmenter struct {
	segmenter *segment.Segmenter
	rtl       func(rune) bool
}

// NewGraphemeSegmenter creates a grapheme segmenter. rtl decides the direction
// of a cluster from its first code-point and may be nil for left-to-right
// scripts.
func NewGraphemeSegmenter(rtl func(rune) bool) *GraphemeSegmenter {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	onGraphemes := grapheme.NewBreaker(1)
	return &GraphemeSegmenter{
		segmenter: segment.NewSegmenter(onGraphemes),
		rtl:       rtl,
	}
}

// ThaiSegmenter creates a segmenter for Thai text.
func ThaiSegmenter() *GraphemeSegmenter {
	return NewGraphemeSegmenter(nil)
}

// ArabicSegmenter creates a segmenter for Arabic text. Clusters of Arabic
// letters read right-to-left, Arabic-Indic digits left-to-right.
func ArabicSegmenter() *GraphemeSegmenter {
	return NewGraphemeSegmenter(func(r rune) bool {
		props, _ := ubidi.LookupRune(r)
		c := props.Class()
		return c == ubidi.AL || c == ubidi.R
	})
}

// Tokenize splits text into grapheme clusters.
func (gs *GraphemeSegmenter) Tokenize(text []rune) []Cluster {
	if len(text) == 0 {
		return nil
	}
	clusters := make([]Cluster, 0, len(text))
	gs.segmenter.Init(strings.NewReader(string(text)))
	pos := 0
	for gs.segmenter.Next() {
		grphm := gs.segmenter.Bytes()
		n := utf8.RuneCount(grphm)
		if n == 0 {
			continue
		}
		c := Cluster{Start: pos, Length: n}
		if gs.rtl != nil {
			first, _ := utf8.DecodeRune(grphm)
			c.RTL = gs.rtl(first)
		}
		clusters = append(clusters, c)
		pos += n
	}
	if pos < len(text) { // never lose characters
		tracer().Errorf("grapheme segmenter stopped at %d of %d", pos, len(text))
		clusters = append(clusters, Cluster{Start: pos, Length: len(text) - pos})
	}
	return clusters
}

// DefaultSegmenters returns segmenters for the clustered scripts.
func DefaultSegmenters() map[glyphing.Script]ClusterSegmenter {
	return map[glyphing.Script]ClusterSegmenter{
		glyphing.Thai:   ThaiSegmenter(),
		glyphing.Arabic: ArabicSegmenter(),
	}
}
