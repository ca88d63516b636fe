package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"travellog/interaction"
)

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
			m.helpScroll = 0
		case "j", "down":
			if m.helpScroll < len(helpLines)-1 {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return m, nil
	}

	switch m.mode {
	case ModeComposer:
		return m.handleComposerKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(key)
	case ModeExporting:
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""
	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		if m.state.Mode == interaction.Connecting {
			m.engine.ToggleConnecting()
		} else if m.state.Selection != "" {
			m.state.Selection = ""
			m.layoutControls()
		}
	default:
		if action, ok := keyActions[key]; ok {
			return m, m.handleAction(action)
		}
	}
	return m, nil
}

func (m *model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeCanvas
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmClearAll:
			m.engine.ClearAll()
			m.successMessage = "Canvas cleared"
		}
	case "n", "N", "esc":
		m.mode = ModeCanvas
	}
	return m, nil
}
