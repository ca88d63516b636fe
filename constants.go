package main

type Mode int

const (
	ModeCanvas Mode = iota
	ModeComposer
	ModeConfirm
	ModeExporting
)

type ConfirmAction int

const (
	ConfirmClearAll ConfirmAction = iota
	ConfirmQuit
)

type composerField int

const (
	fieldText composerField = iota
	fieldDate
	fieldImage
	fieldAspect
	numComposerFields
)

const (
	maxCardText = 140

	// one notch of the mouse wheel, in the same units as a browser's deltaY
	wheelDelta = 100.0

	dateLayout = "2006-01-02"
)
