package dimen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncDoesNotRound(t *testing.T) {
	assert.Equal(t, 2, Trunc(2.99))
	assert.Equal(t, -2, Trunc(-2.99))
	assert.Equal(t, 0, Trunc(math.NaN()))
}

func TestRectUnion(t *testing.T) {
	r := Rect{TopL: Point{0, 0}, BotR: Point{10, 5}}
	s := Rect{TopL: Point{5, -3}, BotR: Point{20, 2}}
	u := r.Union(s)
	assert.Equal(t, 20, u.Width())
	assert.Equal(t, 8, u.Height())
	assert.Equal(t, r, Rect{}.Union(r))
}
