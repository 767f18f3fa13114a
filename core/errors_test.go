package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EINVALID, "group has %d mains", 0)
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "group has 0 mains", UserMessage(err))
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
}

func TestWrapErrorKeepsChain(t *testing.T) {
	base := errors.New("missing glyph metric")
	err := WrapError(base, EMISSING, "glyph %q", 'x')
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, EMISSING, Code(fmt.Errorf("outer: %w", err)))
	assert.Contains(t, err.Error(), "missing glyph metric")
}

func TestUnreachable(t *testing.T) {
	err := Unreachable("direction %d", 7)
	assert.Equal(t, EINTERNAL, Code(err))
	assert.Equal(t, "direction 7", UserMessage(err))
}
