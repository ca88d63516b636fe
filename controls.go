package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"travellog/interaction"
	"travellog/render"
	"travellog/viewport"
)

// keyActions maps canvas keys onto the toolbar so every button has a shortcut.
var keyActions = map[string]render.Action{
	"n":         render.ActionNew,
	"l":         render.ActionLink,
	"d":         render.ActionTrash,
	"delete":    render.ActionTrash,
	"backspace": render.ActionTrash,
	"p":         render.ActionExport,
	"R":         render.ActionClear,
	"+":         render.ActionZoomIn,
	"=":         render.ActionZoomIn,
	"-":         render.ActionZoomOut,
	"0":         render.ActionResetView,
}

func (m *model) handleAction(action render.Action) tea.Cmd {
	switch action {
	case render.ActionNew:
		m.openComposer()
	case render.ActionLink:
		m.engine.ToggleConnecting()
	case render.ActionTrash:
		if m.engine.DeleteSelected() {
			m.successMessage = "Card deleted"
		}
	case render.ActionExport:
		return m.startExport()
	case render.ActionClear:
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClearAll
			return nil
		}
		m.engine.ClearAll()
	case render.ActionZoomIn, render.ActionZoomOut:
		w, h := m.term.ScreenSize()
		m.engine.ZoomButton(w, h, action == render.ActionZoomIn)
	case render.ActionResetView:
		m.engine.ResetView()
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	covered := m.help || m.mode != ModeCanvas
	if covered && msg.Action == tea.MouseActionRelease {
		m.engine.CancelGesture()
		m.pressedButton = nil
		return m, nil
	}
	if m.help || m.mode == ModeExporting || m.mode == ModeConfirm {
		return m, nil
	}
	p := m.term.ScreenPoint(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.engine.Wheel(p, -wheelDelta)
	case msg.Button == tea.MouseButtonWheelDown:
		m.engine.Wheel(p, wheelDelta)
	case m.mode != ModeCanvas:
		// the composer panel covers the canvas
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointerDown(p)
	case msg.Action == tea.MouseActionMotion:
		if m.pressedButton == nil {
			m.engine.PointerMove(p)
		}
	case msg.Action == tea.MouseActionRelease:
		return m, m.pointerUp(p)
	}
	return m, nil
}

func (m *model) target(p viewport.Point) interaction.Target {
	if _, ok := render.HitButton(m.buttons, p); ok {
		return interaction.Target{Kind: interaction.Control}
	}
	return m.engine.HitTest(p)
}

func (m *model) pointerDown(p viewport.Point) {
	m.errorMessage = ""
	m.successMessage = ""
	if b, ok := render.HitButton(m.buttons, p); ok {
		m.pressedButton = &b
	}
	m.engine.PointerDown(p, m.target(p))
}

// pointerUp fires a toolbar action only when the release lands on the enabled button
// that was pressed.
func (m *model) pointerUp(p viewport.Point) tea.Cmd {
	m.engine.PointerUp(p, m.target(p))

	pressed := m.pressedButton
	m.pressedButton = nil
	if pressed == nil {
		return nil
	}
	b, ok := render.HitButton(m.buttons, p)
	if !ok || b.Action != pressed.Action || b.Disabled {
		return nil
	}
	return m.handleAction(b.Action)
}
