package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"travellog/board"
	"travellog/export"
	"travellog/interaction"
	"travellog/render"
	"travellog/reveal"
	"travellog/viewport"
)

func main() {
	config := loadConfig()

	logger, err := newLogger(config.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	raster, err := render.NewRaster()
	if err != nil {
		log.Fatal(err)
	}
	bridge := &export.Bridge{
		Rasterizer: export.GGRasterizer{Raster: raster},
		Writer:     export.NewPDFWriter(config.SaveDirectory),
		Settle:     export.SettleDelay,
		Logger:     logger,
	}

	p := tea.NewProgram(
		initialModel(config, logger, bridge),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, logger *zap.Logger, bridge *export.Bridge) *model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &model{
		mode:    ModeCanvas,
		state:   interaction.NewState(board.New()),
		reveals: reveal.NewScheduler(),
		term:    render.NewTerminal(0, 0),
		bridge:  bridge,
		config:  config,
		logger:  logger,
	}
	m.engine = interaction.New(m.state, interaction.Hooks{
		OnChange:      m.layoutControls,
		OnLinkToggled: m.linkToggled,
		OnCardDeleted: m.reveals.Cancel,
	}, logger)

	if config.ComposerOnStart {
		m.openComposer()
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case reveal.TickMsg, reveal.DoneMsg:
		finished, cmd := m.reveals.Update(msg)
		if finished != "" {
			m.state.Board.SetRevealing(finished, false)
		}
		return m, cmd

	case exportSettledMsg:
		return m, m.captureExport(msg)

	case exportDoneMsg:
		m.finishExport(msg)
		return m, nil
	}
	return m, nil
}

// resize fits the terminal grid to the window, leaving the bottom row for the status line.
func (m *model) resize() {
	rows := m.height - 1
	if rows < 1 {
		rows = 1
	}
	cols := m.width
	if cols < 1 {
		cols = 1
	}
	m.term.Cols = cols
	m.term.Rows = rows
	m.layoutControls()
}

func (m *model) layoutControls() {
	w, h := m.term.ScreenSize()
	m.buttons = render.Toolbar(w, h, m.term.CellW, m.term.CellH,
		m.state.Selection != "", m.state.Mode == interaction.Connecting)
}

func (m *model) linkToggled(link board.Link, exists bool) {
	if exists {
		m.successMessage = "Linked"
	} else {
		m.successMessage = "Unlinked"
	}
}

func (m *model) screenCenter() viewport.Point {
	w, h := m.term.ScreenSize()
	return viewport.Point{X: w / 2, Y: h / 2}
}

func (m *model) scene() render.Scene {
	return render.Compose(render.Input{
		Viewport:   m.state.Viewport,
		Board:      m.state.Board,
		Selection:  m.state.Selection,
		Connecting: m.state.Mode == interaction.Connecting,
		Visible:    m.reveals.Visible,
		Controls:   m.buttons,
	})
}
