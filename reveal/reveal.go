// Package reveal types a card's text out one character at a time and clears the
// card's revealing flag once the animation has had time to finish.
package reveal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	CharInterval = 50 * time.Millisecond
	MinDuration  = 2000 * time.Millisecond
	tail         = 500 * time.Millisecond
)

// Duration is how long a card stays in the revealing state.
func Duration(text string) time.Duration {
	d := time.Duration(len([]rune(text)))*CharInterval + tail
	if d < MinDuration {
		return MinDuration
	}
	return d
}

type TickMsg struct {
	ID  string
	Gen int
}

type DoneMsg struct {
	ID  string
	Gen int
}

type task struct {
	gen   int
	shown int
	total int
}

// Scheduler tracks one task per card. Every schedule gets a new generation so
// messages from a canceled or superseded task are dropped.
type Scheduler struct {
	tasks map[string]*task
	gen   int
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*task)}
}

func (s *Scheduler) Schedule(id, text string) tea.Cmd {
	s.gen++
	gen := s.gen
	s.tasks[id] = &task{gen: gen, total: len([]rune(text))}

	done := tea.Tick(Duration(text), func(time.Time) tea.Msg {
		return DoneMsg{ID: id, Gen: gen}
	})
	return tea.Batch(tick(id, gen), done)
}

func tick(id string, gen int) tea.Cmd {
	return tea.Tick(CharInterval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen}
	})
}

func (s *Scheduler) Cancel(id string) {
	delete(s.tasks, id)
}

func (s *Scheduler) Active(id string) bool {
	_, ok := s.tasks[id]
	return ok
}

func (s *Scheduler) current(id string, gen int) *task {
	t, ok := s.tasks[id]
	if !ok || t.gen != gen {
		return nil
	}
	return t
}

// Visible returns the part of text already typed out for the card.
func (s *Scheduler) Visible(id, text string) string {
	t, ok := s.tasks[id]
	if !ok {
		return text
	}
	runes := []rune(text)
	if t.shown >= len(runes) {
		return text
	}
	return string(runes[:t.shown])
}

// Update consumes reveal messages. finished is the id of a card whose reveal is over.
func (s *Scheduler) Update(msg tea.Msg) (finished string, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		t := s.current(msg.ID, msg.Gen)
		if t == nil {
			return "", nil
		}
		if t.shown < t.total {
			t.shown++
		}
		if t.shown < t.total {
			return "", tick(msg.ID, msg.Gen)
		}
	case DoneMsg:
		if s.current(msg.ID, msg.Gen) == nil {
			return "", nil
		}
		delete(s.tasks, msg.ID)
		return msg.ID, nil
	}
	return "", nil
}
