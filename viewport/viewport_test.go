package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestViewport_RoundTrip(t *testing.T) {
	viewports := []Viewport{
		New(),
		{OffsetX: 120, OffsetY: -40, Scale: 0.5},
		{OffsetX: -3000.5, OffsetY: 812.25, Scale: 2.75},
		{OffsetX: 1, OffsetY: 1, Scale: MinScale},
	}
	points := []Point{{0, 0}, {10, -10}, {1e6, -1e6}, {-0.125, 333.3}}

	for _, v := range viewports {
		for _, p := range points {
			got := v.ScreenToWorld(v.WorldToScreen(p))
			assert.InDelta(t, p.X, got.X, 1e-6)
			assert.InDelta(t, p.Y, got.Y, 1e-6)
		}
	}
}

func TestViewport_ZoomAtKeepsAnchor(t *testing.T) {
	v := Viewport{OffsetX: 50, OffsetY: 25, Scale: 1}
	anchor := Point{400, 300}
	before := v.ScreenToWorld(anchor)

	v.ZoomAt(anchor, 0.5)

	assert.InDelta(t, 1.5, v.Scale, eps)
	after := v.WorldToScreen(before)
	assert.InDelta(t, anchor.X, after.X, 1e-9)
	assert.InDelta(t, anchor.Y, after.Y, 1e-9)
}

func TestViewport_ZoomAtInverse(t *testing.T) {
	tests := []struct {
		name   string
		start  Viewport
		anchor Point
		delta  float64
	}{
		{"in", Viewport{OffsetX: 10, OffsetY: 20, Scale: 1}, Point{300, 200}, 0.3},
		{"out", Viewport{OffsetX: -500, OffsetY: 75, Scale: 2}, Point{12, 640}, -0.8},
		{"tiny", Viewport{OffsetX: 0, OffsetY: 0, Scale: 0.4}, Point{0, 0}, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			v.ZoomAt(tt.anchor, tt.delta)
			v.ZoomAt(tt.anchor, -tt.delta)

			assert.InDelta(t, tt.start.Scale, v.Scale, 1e-9)
			assert.InDelta(t, tt.start.OffsetX, v.OffsetX, 1e-6)
			assert.InDelta(t, tt.start.OffsetY, v.OffsetY, 1e-6)
		})
	}
}

func TestViewport_ZoomClamp(t *testing.T) {
	v := New()
	v.ZoomAt(Point{100, 100}, 10)
	assert.Equal(t, MaxScale, v.Scale)

	v.ZoomAt(Point{100, 100}, -10)
	assert.Equal(t, MinScale, v.Scale)
}

func TestViewport_PanAndReset(t *testing.T) {
	v := Viewport{Scale: 2}
	v.PanBy(15, -7)
	assert.Equal(t, Point{15, -7}, v.Offset())
	assert.Equal(t, 2.0, v.Scale, "pan must not touch scale")

	v.Reset()
	assert.Equal(t, New(), v)
}

func TestViewport_ZoomStep(t *testing.T) {
	v := New()
	v.ZoomStep(1000, 500, true)
	assert.InDelta(t, 1.2, v.Scale, eps)
	assert.InDelta(t, -100, v.OffsetX, eps)
	assert.InDelta(t, -50, v.OffsetY, eps)

	v.ZoomStep(1000, 500, false)
	assert.InDelta(t, 1.0, v.Scale, eps)
	assert.InDelta(t, 0, v.OffsetX, eps)
	assert.InDelta(t, 0, v.OffsetY, eps)
}

func TestFrame(t *testing.T) {
	v := Frame(-220, 40)
	assert.Equal(t, Point{0, 0}, v.WorldToScreen(Point{-220, 40}))
	assert.Equal(t, 1.0, v.Scale)
}
