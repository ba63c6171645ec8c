package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.PixelSize()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)

	c.Set(3, 5)
	assert.True(t, c.IsSet(3, 5))
	assert.False(t, c.IsSet(2, 5))

	c.Set(-1, 0)
	c.Set(100, 100)
	assert.False(t, c.IsSet(100, 100))

	c.Clear()
	assert.False(t, c.IsSet(3, 5))
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, "⠀⠀⠀", l)
	}

	c.Set(0, 0)
	assert.Equal(t, '⠁', c.Grid[0][0])
}

func TestCanvasShapes(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawLine(0, 0, 10, 6)
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(10, 6))

	c.Clear()
	c.DrawCircle(20, 20, 5)
	assert.True(t, c.IsSet(25, 20))
	assert.True(t, c.IsSet(20, 15))
	assert.False(t, c.IsSet(20, 20))

	c.Clear()
	c.FillDisc(20, 20, 5)
	assert.True(t, c.IsSet(20, 20))
	assert.True(t, c.IsSet(23, 23))
	assert.False(t, c.IsSet(25, 25))
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Resize(0, 5)
	assert.Equal(t, 1, c.Width)
	assert.Equal(t, 5, c.Height)
	assert.False(t, c.IsSet(1, 1))
}
