package render

import (
	"math"

	"travellog/viewport"
)

type Action int

const (
	ActionNew Action = iota
	ActionLink
	ActionTrash
	ActionExport
	ActionClear
	ActionZoomIn
	ActionResetView
	ActionZoomOut
)

// Button is a screen-space control. Controls sit above the content layer and are
// left out of exports.
type Button struct {
	Action   Action
	Label    string
	X, Y     float64
	W, H     float64
	Active   bool
	Disabled bool
}

func (b Button) Contains(p viewport.Point) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// Toolbar lays out the main buttons centered along the top edge and the zoom buttons
// in the bottom-right corner. Sizes are multiples of the cell size so the terminal
// draws them on whole cells.
func Toolbar(screenW, screenH, cellW, cellH float64, hasSelection, connecting bool) []Button {
	main := []Button{
		{Action: ActionNew, Label: "New"},
		{Action: ActionLink, Label: "Link", Active: connecting},
		{Action: ActionTrash, Label: "Trash", Disabled: !hasSelection},
		{Action: ActionExport, Label: "PDF"},
		{Action: ActionClear, Label: "Reset"},
	}
	const gap = 1

	total := 0.0
	for i := range main {
		main[i].W = float64(len(main[i].Label)+4) * cellW
		main[i].H = cellH
		total += main[i].W + gap*cellW
	}
	total -= gap * cellW

	x := snap((screenW-total)/2, cellW)
	for i := range main {
		main[i].X = x
		main[i].Y = cellH
		x += main[i].W + gap*cellW
	}

	zoom := []Button{
		{Action: ActionZoomIn, Label: "+"},
		{Action: ActionResetView, Label: "[]"},
		{Action: ActionZoomOut, Label: "-"},
	}
	for i := range zoom {
		zoom[i].W = 6 * cellW
		zoom[i].H = cellH
		zoom[i].X = snap(screenW-8*cellW, cellW)
		zoom[i].Y = snap(screenH-float64(len(zoom)-i+1)*cellH, cellH)
	}
	return append(main, zoom...)
}

// HitButton returns the button under p. Disabled buttons are still hit so they keep
// the pointer from panning.
func HitButton(buttons []Button, p viewport.Point) (Button, bool) {
	for _, b := range buttons {
		if b.Contains(p) {
			return b, true
		}
	}
	return Button{}, false
}

func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Floor(v/step) * step
}
