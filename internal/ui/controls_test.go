package ui

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdcore/internal/sims/grayscott"
)

func TestParamStep(t *testing.T) {
	assert.InDelta(t, 0.001, paramStep(0.035), 1e-15)
	assert.InDelta(t, 0.1, paramStep(1), 1e-15)
	assert.InDelta(t, 1.0, paramStep(-25), 1e-15)
	assert.Equal(t, 0.001, paramStep(0))
}

func TestAdjustParam(t *testing.T) {
	assert.InDelta(t, 0.036, adjustParam(0.035, 1), 1e-12)
	assert.InDelta(t, 0.034, adjustParam(0.035, -1), 1e-12)
	assert.InDelta(t, 1.1, adjustParam(1, 1), 1e-12)
	assert.InDelta(t, 0.001, adjustParam(0, 1), 1e-12)
}

func TestLayoutRows(t *testing.T) {
	rows := layoutRows(200, 3)
	require.Len(t, rows, 3)
	assert.Equal(t, image.Rect(164, controlsTop+6, 188, controlsTop+30), rows[0].plusRect)
	assert.Equal(t, image.Rect(134, controlsTop+6, 158, controlsTop+30), rows[0].minusRect)
	assert.Equal(t, rows[0].top+lineHeight, rows[1].top)
	assert.True(t, pointInRect(170, controlsTop+10, rows[0].plusRect))
	assert.False(t, pointInRect(188, controlsTop+10, rows[0].plusRect))
	assert.Nil(t, layoutRows(0, 3))
}

func TestStatusLines(t *testing.T) {
	e := grayscott.New(grayscott.Config{Width: 8, Height: 8, Seed: 1}, nil)
	lines := StatusLines(e, 0, true)
	require.Len(t, lines, 4)
	assert.Equal(t, "Gray-Scott (inbuilt)", lines[0])
	assert.Equal(t, "steps: 0  paused", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "chemical a: ["))
	assert.Equal(t, "undo: -  redo: -", lines[3])

	require.NoError(t, e.SetValue(0, 0, 0, 0.2))
	e.SetUndoPoint()
	lines = StatusLines(e, 5, false)
	require.Len(t, lines, 3)
	assert.Equal(t, "Gray-Scott (inbuilt)", lines[0])
	assert.Equal(t, "undo: ctrl+z  redo: -", lines[2])

	e.SetDescription("edited")
	lines = StatusLines(e, 5, false)
	assert.Equal(t, "Gray-Scott (inbuilt) *", lines[0])
	assert.Equal(t, "undo: ctrl+z  redo: -", lines[2])
}
