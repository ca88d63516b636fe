package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travellog/board"
	"travellog/viewport"
)

func TestBetween_Droop(t *testing.T) {
	tests := []struct {
		name  string
		a, b  board.Card
		droop float64
	}{
		{"horizontal 300", board.Card{X: 0, Y: 0}, board.Card{X: 300, Y: 0}, 75},
		{"capped", board.Card{X: 0, Y: 0}, board.Card{X: 2000, Y: 0}, 150},
		{"same spot", board.Card{X: 40, Y: 40}, board.Card{X: 40, Y: 40}, 0},
		{"vertical 400", board.Card{X: 10, Y: 0}, board.Card{X: 10, Y: 400}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, ok := Between(&tt.a, &tt.b)
			assert.True(t, ok)
			assert.InDelta(t, tt.droop, curve.Droop(), 1e-9)
		})
	}
}

func TestBetween_Anchors(t *testing.T) {
	a := board.Card{X: 0, Y: 0}
	b := board.Card{X: 300, Y: 0}
	curve, _ := Between(&a, &b)

	assert.Equal(t, viewport.Point{X: 140, Y: 100}, curve.From)
	assert.Equal(t, viewport.Point{X: 440, Y: 100}, curve.To)
	assert.Equal(t, viewport.Point{X: 290, Y: 175}, curve.Control)
}

func TestBetween_MissingCard(t *testing.T) {
	a := board.Card{}
	_, ok := Between(&a, nil)
	assert.False(t, ok)
	_, ok = Between(nil, &a)
	assert.False(t, ok)
}

func TestCurve_Sample(t *testing.T) {
	curve := Through(viewport.Point{X: 0, Y: 0}, viewport.Point{X: 100, Y: 0})
	points := curve.Sample(4)

	assert.Len(t, points, 5)
	assert.Equal(t, curve.From, points[0])
	assert.Equal(t, curve.To, points[4])
	// the lowest point of a symmetric droop is at the middle, half way to the control
	assert.InDelta(t, 50, points[2].X, 1e-9)
	assert.InDelta(t, curve.Droop()/2, points[2].Y, 1e-9)
	assert.Greater(t, curve.Length(16), 100.0)
}
