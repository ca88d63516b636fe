package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"travellog/interaction"
)

const composerWidth = 44

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1).
			Width(composerWidth)

	screenStyle   = lipgloss.NewStyle().Background(lipgloss.Color("108")).Foreground(lipgloss.Color("235"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(8)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Width(8)
	printStyle    = lipgloss.NewStyle().Background(lipgloss.Color("172")).Foreground(lipgloss.Color("232")).Bold(true)
	printOffStyle = lipgloss.NewStyle().Background(lipgloss.Color("241")).Foreground(lipgloss.Color("245"))
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var canvas string
	if m.mode == ModeComposer {
		canvas = lipgloss.Place(m.term.Cols, m.term.Rows, lipgloss.Center, lipgloss.Center,
			m.composerView(),
			lipgloss.WithWhitespaceChars("·"),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("238")))
	} else {
		canvas = strings.Join(m.term.Render(m.scene()), "\n")
	}
	return canvas + "\n" + m.statusLine()
}

func (m *model) statusLine() string {
	var status string
	switch m.mode {
	case ModeComposer:
		status = "Mode: COMPOSE | Tab=next field, Enter=print, Ctrl+V=paste, Esc=close"
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClearAll:
			message = "Clear all memories? (y/n)"
		case ConfirmQuit:
			message = "Quit travellog? (y/n)"
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	case ModeExporting:
		status = "Mode: EXPORT | Printing..."
	default:
		if m.state.Mode == interaction.Connecting {
			status = "Mode: CONNECT | CONNECT MODE: CLICK TWO CARDS"
		} else {
			status = "Mode: CANVAS | DRAG TO PAN • WHEEL TO ZOOM"
		}
		status += fmt.Sprintf(" | Zoom: %d%%", int(math.Round(m.state.Viewport.Scale*100)))
	}

	line := statusStyle.Render(status)
	if m.errorMessage != "" {
		line += statusStyle.Render(" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage != "" {
		line += statusStyle.Render(" | ") + successStyle.Render(m.successMessage)
	} else if m.mode == ModeCanvas {
		line += statusStyle.Render(" | ? for help | q to quit")
	}
	return line
}

func (m *model) composerView() string {
	c := m.composer
	inner := composerWidth - 2

	label := func(f composerField, name string) string {
		if c.field == f {
			return focusStyle.Render("> " + name)
		}
		return labelStyle.Render("  " + name)
	}

	text := string(c.text)
	if c.field == fieldText {
		text += "▌"
	}
	if text == "" {
		text = "TYPE MESSAGE..."
	}
	screen := screenStyle.Width(inner).Render(wordwrap.String(text, inner))

	date := c.date
	image := c.image
	switch c.field {
	case fieldDate:
		date += "▌"
	case fieldImage:
		image += "▌"
	}
	if image == "" {
		image = "(none)"
	}

	button := printOffStyle.Render(" PRINT CARD ")
	if len(c.text) > 0 || strings.TrimSpace(c.image) != "" {
		button = printStyle.Render(" PRINT CARD ")
	}

	rows := []string{
		"FIX-BEEPER",
		"",
		label(fieldText, "MSG"),
		screen,
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, fmt.Sprintf("%d/%d CHARS", len(c.text), maxCardText)),
		label(fieldDate, "DATE") + date,
		label(fieldImage, "IMAGE") + image,
		label(fieldAspect, "FRAME") + c.aspect.String() + "  ←/→",
		"",
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, button),
	}
	if c.err != "" {
		rows = append(rows, "", errorStyle.Render(c.err))
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

var helpLines = []string{
	"Travel Log Help",
	"===============",
	"",
	"Canvas:",
	"-------",
	"  Drag background  Pan the canvas",
	"  Mouse wheel      Zoom around the pointer",
	"  Drag card        Move a card (selects it)",
	"  Click card       Select a card",
	"  Click background Clear the selection",
	"",
	"Toolbar:",
	"--------",
	"  n      [ New ]    Open the composer",
	"  l      [ Link ]   Toggle connect mode",
	"                    - click a card, then another to link or unlink them",
	"                    - click the same card again to cancel",
	"  d/Del  [ Trash ]  Delete the selected card and its links",
	"  p      [ PDF ]    Print every card to travel-memories-log.pdf",
	"  R      [ Reset ]  Clear all memories",
	"  +/=    [ + ]      Zoom in",
	"  -      [ - ]      Zoom out",
	"  0      [ [] ]     Reset the view",
	"",
	"Composer:",
	"---------",
	"  Tab/Shift+Tab    Next/previous field",
	"  ←/→              Change the photo frame",
	"  Ctrl+V           Paste from the clipboard",
	"  Enter            Print the card",
	"  Esc              Close",
	"",
	"General:",
	"  Esc              Leave connect mode/clear selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m *model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
