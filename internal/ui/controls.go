package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"rdcore/internal/core"
	"rdcore/internal/pattern"
)

// paramStep is the increment of the +/- buttons: one tenth of the value's
// order of magnitude, so 0.035 moves by 0.001 and 1 by 0.1.
func paramStep(v float64) float64 {
	a := math.Abs(v)
	if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0.001
	}
	return math.Pow(10, math.Floor(math.Log10(a))-1)
}

// adjustParam moves v one step in direction, snapped to the step grid.
func adjustParam(v float64, direction int) float64 {
	step := paramStep(v)
	target := v + float64(direction)*step
	return math.Round(target/step) * step
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

type controlRow struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func layoutRows(width, n int) []controlRow {
	if n <= 0 || width <= 0 {
		return nil
	}
	rows := make([]controlRow, n)
	for i := range rows {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		rows[i] = controlRow{top: top, minusRect: minusRect, plusRect: plusRect}
	}
	return rows
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// StatusLines describes the engine state shown by the overlay.
func StatusLines(e core.Engine, chemical int, paused bool) []string {
	title := fmt.Sprintf("%s (%s)", e.RuleName(), e.RuleType())
	if e.IsModified() {
		title += " *"
	}
	state := "running"
	if paused {
		state = "paused"
	}
	lines := []string{
		title,
		fmt.Sprintf("steps: %d  %s", e.TimestepsTaken(), state),
	}
	if vals, err := e.Data(chemical); err == nil {
		lo, hi := rangeOf(vals)
		lines = append(lines, fmt.Sprintf("chemical %s: [%s, %s]", pattern.ChemicalName(chemical), formatParam(lo), formatParam(hi)))
	}
	undo, redo := "-", "-"
	if e.CanUndo() {
		undo = "ctrl+z"
	}
	if e.CanRedo() {
		redo = "ctrl+y"
	}
	lines = append(lines, fmt.Sprintf("undo: %s  redo: %s", undo, redo))
	return lines
}

func rangeOf(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
