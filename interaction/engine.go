// Package interaction turns a raw pointer and wheel stream into pan, drag, select and
// link operations against the viewport and the board.
package interaction

import (
	"go.uber.org/zap"

	"travellog/board"
	"travellog/viewport"
)

const (
	// pointer travel below this many screen pixels still counts as a click
	ClickSlop = 5.0

	// scale change per unit of wheel delta
	ZoomSensitivity = 0.001
)

type Hooks struct {
	// OnChange runs after every mutation of the viewport, board or selection.
	OnChange      func()
	OnLinkToggled func(link board.Link, exists bool)
	OnCardDeleted func(id string)
}

type Engine struct {
	state  *State
	hooks  Hooks
	logger *zap.Logger
}

func New(state *State, hooks Hooks, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{state: state, hooks: hooks, logger: logger}
}

func (e *Engine) State() *State {
	return e.state
}

func (e *Engine) changed() {
	if e.hooks.OnChange != nil {
		e.hooks.OnChange()
	}
}

// HitTest finds the card under a screen point. The selected card is raised above the
// rest, then later cards sit above earlier ones.
func (e *Engine) HitTest(p viewport.Point) Target {
	s := e.state
	w := s.Viewport.ScreenToWorld(p)
	if s.Selection != "" {
		if card := s.Board.Card(s.Selection); card != nil && card.Contains(w.X, w.Y) {
			return OnCard(card.ID)
		}
	}
	cards := s.Board.Cards()
	for i := len(cards) - 1; i >= 0; i-- {
		if cards[i].Contains(w.X, w.Y) {
			return OnCard(cards[i].ID)
		}
	}
	return Target{Kind: Background}
}

func (e *Engine) PointerDown(p viewport.Point, target Target) {
	s := e.state
	s.gesture = Idle
	s.drag = DragSession{}
	s.pressed = true
	s.downTarget = target
	s.hasOrigin = false

	switch target.Kind {
	case Background:
		s.gesture = Panning
		s.lastMouse = p
		s.origin = p
		s.hasOrigin = true
	case CardTarget:
		if s.Mode == Connecting {
			// cards stay put while linking; the click decides on release
			return
		}
		card := s.Board.Card(target.CardID)
		if card == nil {
			return
		}
		w := s.Viewport.ScreenToWorld(p)
		s.drag = DragSession{
			CardID: card.ID,
			Grab:   viewport.Point{X: w.X - card.X, Y: w.Y - card.Y},
		}
		s.gesture = DraggingCard
		s.Selection = card.ID
		e.changed()
	}
}

func (e *Engine) PointerMove(p viewport.Point) {
	s := e.state
	switch s.gesture {
	case Panning:
		s.Viewport.PanBy(p.X-s.lastMouse.X, p.Y-s.lastMouse.Y)
		s.lastMouse = p
		e.changed()
	case DraggingCard:
		w := s.Viewport.ScreenToWorld(p)
		if s.Board.MoveCard(s.drag.CardID, w.X-s.drag.Grab.X, w.Y-s.drag.Grab.Y) {
			e.changed()
		}
	}
}

// PointerUp ends the gesture and delivers the click it produced, if any. Releasing on
// the card that was pressed is a card click; a sequence that began on the background
// is a background click.
func (e *Engine) PointerUp(p viewport.Point, target Target) {
	s := e.state
	wasPressed := s.pressed
	down := s.downTarget

	s.gesture = Idle
	s.drag = DragSession{}
	s.pressed = false
	s.downTarget = Target{}

	if !wasPressed {
		return
	}
	switch {
	case down.Kind == CardTarget && target.Kind == CardTarget && down.CardID == target.CardID:
		e.ClickCard(target.CardID)
	case down.Kind == Background:
		e.clickBackground(p)
	}
}

// CancelGesture ends the current gesture without producing a click, for a release
// that happened while the canvas was covered.
func (e *Engine) CancelGesture() {
	s := e.state
	s.gesture = Idle
	s.drag = DragSession{}
	s.pressed = false
	s.downTarget = Target{}
	s.hasOrigin = false
}

func (e *Engine) clickBackground(p viewport.Point) {
	s := e.state
	if !s.hasOrigin {
		return
	}
	moved := s.origin.Dist(p)
	s.hasOrigin = false
	if moved < ClickSlop && s.Selection != "" {
		s.Selection = ""
		e.changed()
	}
}

// ClickCard applies a click on a card. In connecting mode the first click picks an
// endpoint, a click on the same card cancels, and a click on another card toggles the
// link between the two.
func (e *Engine) ClickCard(id string) {
	s := e.state
	if s.Board.Card(id) == nil {
		return
	}
	if s.Mode != Connecting {
		s.Selection = id
		e.changed()
		return
	}

	switch s.Selection {
	case "":
		s.Selection = id
	case id:
		s.Selection = ""
	default:
		link, exists := s.Board.ToggleLink(s.Selection, id)
		e.logger.Debug("link toggled",
			zap.String("from", s.Selection),
			zap.String("to", id),
			zap.Bool("exists", exists))
		if e.hooks.OnLinkToggled != nil {
			e.hooks.OnLinkToggled(link, exists)
		}
		s.Selection = ""
	}
	e.changed()
}

func (e *Engine) Wheel(p viewport.Point, deltaY float64) {
	s := e.state
	if s.ComposerOpen {
		return
	}
	s.Viewport.ZoomAt(p, -deltaY*ZoomSensitivity)
	e.changed()
}

// ToggleConnecting flips the link mode and drops the selection so the next click
// starts a fresh pair.
func (e *Engine) ToggleConnecting() {
	s := e.state
	if s.Mode == Connecting {
		s.Mode = Normal
	} else {
		s.Mode = Connecting
	}
	s.Selection = ""
	e.changed()
}

func (e *Engine) DeleteSelected() bool {
	s := e.state
	id := s.Selection
	if id == "" {
		return false
	}
	if s.drag.CardID == id {
		s.gesture = Idle
		s.drag = DragSession{}
	}
	if !s.Board.DeleteCard(id) {
		s.Selection = ""
		return false
	}
	e.logger.Debug("card deleted", zap.String("card", id))
	if e.hooks.OnCardDeleted != nil {
		e.hooks.OnCardDeleted(id)
	}
	s.Selection = ""
	e.changed()
	return true
}

// ClearAll empties the board and returns the view to its origin.
func (e *Engine) ClearAll() {
	s := e.state
	if e.hooks.OnCardDeleted != nil {
		for _, card := range s.Board.Cards() {
			e.hooks.OnCardDeleted(card.ID)
		}
	}
	s.Board.Clear()
	s.Selection = ""
	s.gesture = Idle
	s.drag = DragSession{}
	s.Viewport.Reset()
	e.changed()
}

func (e *Engine) ZoomButton(screenW, screenH float64, zoomIn bool) {
	e.state.Viewport.ZoomStep(screenW, screenH, zoomIn)
	e.changed()
}

func (e *Engine) ResetView() {
	e.state.Viewport.Reset()
	e.changed()
}

// AddCard places a new card at the center of the visible screen area.
func (e *Engine) AddCard(text, date, imageRef string, aspect board.Aspect, screenCenter viewport.Point) string {
	s := e.state
	id := s.Board.AddCard(text, date, imageRef, aspect, s.Viewport.ScreenToWorld(screenCenter))
	e.logger.Debug("card added", zap.String("card", id), zap.Int("chars", len([]rune(text))))
	e.changed()
	return id
}
