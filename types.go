package main

import (
	"go.uber.org/zap"

	"travellog/board"
	"travellog/export"
	"travellog/interaction"
	"travellog/render"
	"travellog/reveal"
)

type composer struct {
	text   []rune
	date   string
	image  string
	aspect board.Aspect
	field  composerField
	err    string
}

type model struct {
	width      int
	height     int
	mode       Mode
	help       bool
	helpScroll int

	state   *interaction.State
	engine  *interaction.Engine
	reveals *reveal.Scheduler
	term    render.Terminal
	buttons []render.Button

	// set when a mouse press lands on a toolbar button; the action fires on release
	pressedButton *render.Button

	composer      composer
	confirmAction ConfirmAction

	bridge  *export.Bridge
	session *export.Session

	// bumped per export so late messages from an abandoned one are dropped
	exportGen int

	config         *Config
	logger         *zap.Logger
	errorMessage   string
	successMessage string
}
