package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"travellog/export"
)

type exportSettledMsg struct {
	gen int
	err error
}

type exportDoneMsg struct {
	gen int
	err error
}

// startExport moves the view to the capture frame and waits for it to settle before
// the capture. The canvas ignores the pointer until the export finishes.
func (m *model) startExport() tea.Cmd {
	session, err := m.bridge.Begin(&m.state.Viewport, m.state.Board)
	if errors.Is(err, export.ErrNothingToExport) {
		m.errorMessage = "Nothing to print! Add some memories first."
		return nil
	}
	if err != nil {
		m.logger.Error("export failed to start", zap.Error(err))
		m.errorMessage = "Failed to generate PDF."
		return nil
	}

	m.exportGen++
	gen := m.exportGen
	m.session = session
	m.mode = ModeExporting
	m.engine.CancelGesture()
	m.pressedButton = nil
	m.successMessage = ""
	m.errorMessage = ""
	m.layoutControls()

	return func() tea.Msg {
		return exportSettledMsg{gen: gen, err: session.Wait(context.Background())}
	}
}

// captureExport snapshots the scene on the update loop and rasterizes it off it.
func (m *model) captureExport(msg exportSettledMsg) tea.Cmd {
	if msg.gen != m.exportGen || m.session == nil {
		return nil
	}
	if msg.err != nil {
		return func() tea.Msg { return exportDoneMsg{gen: msg.gen, err: msg.err} }
	}
	session := m.session
	scene := m.scene()
	gen := msg.gen
	return func() tea.Msg {
		return exportDoneMsg{gen: gen, err: session.Capture(context.Background(), scene)}
	}
}

func (m *model) finishExport(msg exportDoneMsg) {
	if msg.gen != m.exportGen || m.session == nil {
		return
	}
	m.session.Restore(&m.state.Viewport)
	m.session = nil
	m.mode = ModeCanvas
	m.layoutControls()

	if msg.err != nil {
		m.logger.Error("export failed", zap.Error(msg.err))
		m.errorMessage = "Failed to generate PDF."
		return
	}
	path := m.config.GetSavePath(export.FileName)
	m.logger.Info("export written", zap.String("path", path))
	m.successMessage = "Saved " + path
}
