// Package board holds the cards and links placed on the canvas. It is plain data:
// every mutation is synchronous and the caller owns the only reference.
package board

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"travellog/viewport"
)

const (
	// new cards are centered on the viewport, then nudged so repeats do not stack
	placementOffsetX = CardWidth / 2
	placementOffsetY = 150
	jitterRange      = 40
)

type Board struct {
	cards  []Card
	links  []Link
	newID  func() string
	random func() float64
}

type Option func(*Board)

// WithRand makes placement jitter reproducible.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.random = r.Float64 }
}

func WithIDs(gen func() string) Option {
	return func(b *Board) { b.newID = gen }
}

func New(opts ...Option) *Board {
	b := &Board{
		cards:  make([]Card, 0),
		links:  make([]Link, 0),
		newID:  uuid.NewString,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) jitter() float64 {
	return b.random()*jitterRange - jitterRange/2
}

// AddCard appends a revealing card centered on the world point under the screen
// center and returns its id.
func (b *Board) AddCard(text, date, imageRef string, aspect Aspect, center viewport.Point) string {
	card := Card{
		ID:        b.newID(),
		X:         center.X - placementOffsetX + b.jitter(),
		Y:         center.Y - placementOffsetY + b.jitter(),
		Text:      text,
		Date:      date,
		ImageRef:  imageRef,
		Revealing: true,
		Aspect:    aspect,
	}
	b.cards = append(b.cards, card)
	return card.ID
}

func (b *Board) index(id string) int {
	for i := range b.cards {
		if b.cards[i].ID == id {
			return i
		}
	}
	return -1
}

// Card returns the live card with the given id, or nil.
func (b *Board) Card(id string) *Card {
	if i := b.index(id); i >= 0 {
		return &b.cards[i]
	}
	return nil
}

func (b *Board) Cards() []Card {
	return append([]Card(nil), b.cards...)
}

func (b *Board) Links() []Link {
	return append([]Link(nil), b.links...)
}

func (b *Board) Len() int {
	return len(b.cards)
}

// DeleteCard removes the card and every link touching it.
func (b *Board) DeleteCard(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.cards = append(b.cards[:i], b.cards[i+1:]...)

	kept := b.links[:0]
	for _, link := range b.links {
		if !link.Touches(id) {
			kept = append(kept, link)
		}
	}
	b.links = kept
	return true
}

func (b *Board) MoveCard(id string, x, y float64) bool {
	card := b.Card(id)
	if card == nil {
		return false
	}
	card.X, card.Y = x, y
	return true
}

func (b *Board) SetRevealing(id string, revealing bool) bool {
	card := b.Card(id)
	if card == nil {
		return false
	}
	card.Revealing = revealing
	return true
}

// FindLink looks up the link between a and b regardless of direction.
func (b *Board) FindLink(a, c string) (Link, bool) {
	for _, link := range b.links {
		if link.Joins(a, c) {
			return link, true
		}
	}
	return Link{}, false
}

// ToggleLink removes the link between a and c if one exists, otherwise creates it.
// It reports whether a link exists afterwards.
func (b *Board) ToggleLink(a, c string) (Link, bool) {
	for i, link := range b.links {
		if link.Joins(a, c) {
			b.links = append(b.links[:i], b.links[i+1:]...)
			return link, false
		}
	}
	// endpoints that are gone would leave a dangling link
	if b.Card(a) == nil || b.Card(c) == nil {
		return Link{}, false
	}
	link := Link{ID: b.newID(), FromID: a, ToID: c}
	b.links = append(b.links, link)
	return link, true
}

func (b *Board) Clear() {
	b.cards = b.cards[:0]
	b.links = b.links[:0]
}

// Bounds returns the axis-aligned box covering every card footprint.
func (b *Board) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(b.cards) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range b.cards {
		card := &b.cards[i]
		w, h := card.Size()
		minX = math.Min(minX, card.X)
		minY = math.Min(minY, card.Y)
		maxX = math.Max(maxX, card.X+w)
		maxY = math.Max(maxY, card.Y+h)
	}
	return minX, minY, maxX, maxY, true
}
