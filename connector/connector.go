// Package connector computes the drooping curve drawn between two linked cards.
package connector

import (
	"math"

	"travellog/board"
	"travellog/viewport"
)

const (
	MaxDroop  = 150
	DroopRate = 0.25
)

// Curve is a quadratic Bézier segment in world space.
type Curve struct {
	From    viewport.Point
	Control viewport.Point
	To      viewport.Point
}

// Anchor is the point on a card a connector attaches to: horizontally centered,
// a fixed distance below the top edge.
func Anchor(c *board.Card) viewport.Point {
	return viewport.Point{X: c.X + board.CardWidth/2, Y: c.Y + board.AnchorOffsetY}
}

// Between returns the connector for two cards. It reports false when either card is
// missing so a dangling link draws nothing.
func Between(from, to *board.Card) (Curve, bool) {
	if from == nil || to == nil {
		return Curve{}, false
	}
	return Through(Anchor(from), Anchor(to)), true
}

// Through builds the curve between two anchors, sagging by a quarter of their distance
// up to MaxDroop.
func Through(a, b viewport.Point) Curve {
	mid := viewport.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	droop := math.Min(MaxDroop, a.Dist(b)*DroopRate)
	return Curve{
		From:    a,
		Control: viewport.Point{X: mid.X, Y: mid.Y + droop},
		To:      b,
	}
}

func (c Curve) Droop() float64 {
	return c.Control.Y - (c.From.Y+c.To.Y)/2
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) viewport.Point {
	u := 1 - t
	return viewport.Point{
		X: u*u*c.From.X + 2*u*t*c.Control.X + t*t*c.To.X,
		Y: u*u*c.From.Y + 2*u*t*c.Control.Y + t*t*c.To.Y,
	}
}

// Sample returns n+1 evenly spaced points along the curve, endpoints included.
func (c Curve) Sample(n int) []viewport.Point {
	if n < 1 {
		n = 1
	}
	points := make([]viewport.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		points = append(points, c.At(float64(i)/float64(n)))
	}
	return points
}

// Length approximates the arc length with a polyline of n segments.
func (c Curve) Length(n int) float64 {
	points := c.Sample(n)
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}
