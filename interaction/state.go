package interaction

import (
	"travellog/board"
	"travellog/viewport"
)

// Gesture is what the current pointer-down..pointer-up sequence is doing.
type Gesture int

const (
	Idle Gesture = iota
	Panning
	DraggingCard
)

func (g Gesture) String() string {
	switch g {
	case Panning:
		return "PAN"
	case DraggingCard:
		return "DRAG"
	default:
		return "IDLE"
	}
}

// Mode changes how card clicks are read. It is toggled by the user and survives
// gestures.
type Mode int

const (
	Normal Mode = iota
	Connecting
)

func (m Mode) String() string {
	if m == Connecting {
		return "CONNECT"
	}
	return "CANVAS"
}

type TargetKind int

const (
	Background TargetKind = iota
	CardTarget
	Control
)

// Target is whatever sits under the pointer when an event fires.
type Target struct {
	Kind   TargetKind
	CardID string
}

func OnCard(id string) Target {
	return Target{Kind: CardTarget, CardID: id}
}

// DragSession keeps the world-space distance between the pointer and the card origin
// at grab time so the card does not jump under the pointer.
type DragSession struct {
	CardID string
	Grab   viewport.Point
}

// State is the single aggregate the engine reads and writes.
type State struct {
	Viewport     viewport.Viewport
	Board        *board.Board
	Selection    string
	Mode         Mode
	ComposerOpen bool

	gesture    Gesture
	drag       DragSession
	lastMouse  viewport.Point
	origin     viewport.Point
	hasOrigin  bool
	pressed    bool
	downTarget Target
}

func NewState(b *board.Board) *State {
	return &State{
		Viewport: viewport.New(),
		Board:    b,
	}
}

func (s *State) Gesture() Gesture {
	return s.gesture
}

func (s *State) Drag() (DragSession, bool) {
	return s.drag, s.gesture == DraggingCard
}

func (s *State) Selected(id string) bool {
	return s.Selection != "" && s.Selection == id
}
