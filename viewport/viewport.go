package viewport

import "math"

const (
	MinScale = 0.1
	MaxScale = 3.0

	// zoom buttons step the scale and shift the offset by a share of the window
	ButtonZoomStep  = 0.2
	ButtonShiftRate = 0.1
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Viewport is the affine map screen = world*Scale + offset.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

func New() Viewport {
	return Viewport{Scale: 1}
}

// Frame returns the capture viewport that puts world (minX, minY) at the screen origin
// at scale 1.
func Frame(minX, minY float64) Viewport {
	return Viewport{OffsetX: -minX, OffsetY: -minY, Scale: 1}
}

func (v Viewport) Offset() Point {
	return Point{v.OffsetX, v.OffsetY}
}

func (v Viewport) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

func (v Viewport) WorldToScreen(p Point) Point {
	return Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}

// ZoomAt changes the scale by delta while keeping the world point under anchor fixed
// on screen.
func (v *Viewport) ZoomAt(anchor Point, delta float64) {
	newScale := Clamp(v.Scale + delta)
	ratio := newScale / v.Scale
	v.OffsetX = anchor.X - (anchor.X-v.OffsetX)*ratio
	v.OffsetY = anchor.Y - (anchor.Y-v.OffsetY)*ratio
	v.Scale = newScale
}

// ZoomStep is the toolbar zoom: it does not anchor on a point, it nudges the offset
// by a tenth of the window in the opposite direction of the zoom.
func (v *Viewport) ZoomStep(screenW, screenH float64, zoomIn bool) {
	if zoomIn {
		v.Scale = Clamp(v.Scale + ButtonZoomStep)
		v.OffsetX -= screenW * ButtonShiftRate
		v.OffsetY -= screenH * ButtonShiftRate
		return
	}
	v.Scale = Clamp(v.Scale - ButtonZoomStep)
	v.OffsetX += screenW * ButtonShiftRate
	v.OffsetY += screenH * ButtonShiftRate
}

// PanBy moves the offset by a screen-space delta; pan is never scaled.
func (v *Viewport) PanBy(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

func (v *Viewport) Reset() {
	*v = New()
}

func Clamp(scale float64) float64 {
	return math.Min(math.Max(MinScale, scale), MaxScale)
}
