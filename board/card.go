package board

import "fmt"

type Aspect int

const (
	Square Aspect = iota
	Wide
	Tall
)

func (a Aspect) String() string {
	switch a {
	case Wide:
		return "16:9"
	case Tall:
		return "9:16"
	default:
		return "1:1"
	}
}

func ParseAspect(s string) (Aspect, error) {
	switch s {
	case "", "1:1", "square":
		return Square, nil
	case "16:9", "wide":
		return Wide, nil
	case "9:16", "tall":
		return Tall, nil
	}
	return Square, fmt.Errorf("unknown aspect %q", s)
}

// Next cycles square -> wide -> tall.
func (a Aspect) Next() Aspect {
	return (a + 1) % 3
}

// Card footprint in world pixels. The photo window is inset by the card padding and
// every aspect shares the same text and date footer below it.
const (
	CardWidth     = 280
	CardPadding   = 12
	PhotoWidth    = CardWidth - 2*CardPadding
	footerHeight  = 94
	AnchorOffsetY = 100
)

func (a Aspect) PhotoHeight() float64 {
	switch a {
	case Wide:
		return PhotoWidth * 9 / 16
	case Tall:
		return PhotoWidth * 16 / 9
	default:
		return PhotoWidth
	}
}

// Footprint returns the world-space size of a card with the given aspect.
func Footprint(a Aspect) (float64, float64) {
	return CardWidth, a.PhotoHeight() + footerHeight
}

type Card struct {
	ID        string
	X         float64
	Y         float64
	Text      string
	Date      string
	ImageRef  string
	Revealing bool
	Aspect    Aspect
}

func (c *Card) Size() (float64, float64) {
	return Footprint(c.Aspect)
}

// Contains reports whether world point (x, y) lies on the card's footprint.
func (c *Card) Contains(x, y float64) bool {
	w, h := c.Size()
	return x >= c.X && x < c.X+w && y >= c.Y && y < c.Y+h
}

// Tilt is the small rotation in degrees a card is printed with, derived from its id.
func (c *Card) Tilt() float64 {
	if c.ID == "" {
		return 0
	}
	return float64(int(c.ID[0])%5 - 2)
}

type Link struct {
	ID     string
	FromID string
	ToID   string
}

// Joins reports whether the link connects a and b in either direction.
func (l Link) Joins(a, b string) bool {
	return (l.FromID == a && l.ToID == b) || (l.FromID == b && l.ToID == a)
}

func (l Link) Touches(id string) bool {
	return l.FromID == id || l.ToID == id
}
