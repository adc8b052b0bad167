package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The controller still asks for the warp on release; the window just can't
// honour it.
func TestCursor_CannotWarp(t *testing.T) {
	assert.False(t, Cursor{}.SetCursorPosition(10, 20))
}
