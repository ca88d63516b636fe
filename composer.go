package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"travellog/board"
)

var validate = validator.New()

// submission is what the composer hands to the canvas.
type submission struct {
	Text     string `validate:"max=140"`
	Date     string `validate:"required,datetime=2006-01-02"`
	ImageRef string `validate:"omitempty,file"`
	Aspect   board.Aspect
}

var errEmptySubmission = errors.New("empty submission")

func (c *composer) reset(today time.Time) {
	*c = composer{date: today.Format(dateLayout)}
}

func (c *composer) submission() submission {
	return submission{
		Text:     strings.TrimSpace(string(c.text)),
		Date:     strings.TrimSpace(c.date),
		ImageRef: expandPath(strings.TrimSpace(c.image), homeDir()),
		Aspect:   c.aspect,
	}
}

// validateSubmission returns errEmptySubmission when there is neither text nor image.
func validateSubmission(s submission) error {
	if s.Text == "" && s.ImageRef == "" {
		return errEmptySubmission
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Text":
		return fmt.Errorf("message is limited to %d characters", maxCardText)
	case "Date":
		return fmt.Errorf("date must look like %s", dateLayout)
	case "ImageRef":
		return fmt.Errorf("no image file at %s", fe.Value())
	}
	return fmt.Errorf("invalid %s", strings.ToLower(fe.Field()))
}

func (c *composer) insert(runes []rune) {
	switch c.field {
	case fieldText:
		for _, r := range runes {
			if len(c.text) >= maxCardText {
				break
			}
			if r == '\n' {
				r = ' '
			}
			c.text = append(c.text, r)
		}
	case fieldDate:
		c.date += string(runes)
	case fieldImage:
		c.image += string(runes)
	case fieldAspect:
		c.aspect = c.aspect.Next()
	}
}

func (c *composer) backspace() {
	switch c.field {
	case fieldText:
		if len(c.text) > 0 {
			c.text = c.text[:len(c.text)-1]
		}
	case fieldDate:
		c.date = dropLast(c.date)
	case fieldImage:
		c.image = dropLast(c.image)
	}
}

func dropLast(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

func (m *model) openComposer() {
	m.composer.reset(time.Now())
	m.engine.CancelGesture()
	m.pressedButton = nil
	m.mode = ModeComposer
	m.state.ComposerOpen = true
}

func (m *model) closeComposer() {
	m.mode = ModeCanvas
	m.state.ComposerOpen = false
}

func (m *model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.composer
	switch msg.String() {
	case "esc":
		m.closeComposer()
		return m, nil
	case "tab", "down":
		c.field = (c.field + 1) % numComposerFields
	case "shift+tab", "up":
		c.field = (c.field + numComposerFields - 1) % numComposerFields
	case "enter":
		return m, m.submitComposer()
	case "backspace":
		c.backspace()
	case "left", "right":
		if c.field == fieldAspect {
			c.aspect = c.aspect.Next()
		}
	case "ctrl+v":
		text, err := readClipboardText()
		if err != nil {
			c.err = "Clipboard unavailable"
			return m, nil
		}
		c.insert([]rune(cleanClipboardText(text)))
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			c.insert(msg.Runes)
		}
	}
	c.err = ""
	return m, nil
}

// submitComposer prints the card onto the canvas and starts its reveal. An empty form
// is ignored and stays open.
func (m *model) submitComposer() tea.Cmd {
	s := m.composer.submission()
	if err := validateSubmission(s); err != nil {
		if !errors.Is(err, errEmptySubmission) {
			m.composer.err = err.Error()
		}
		return nil
	}

	id := m.engine.AddCard(s.Text, s.Date, s.ImageRef, s.Aspect, m.screenCenter())
	m.closeComposer()
	m.successMessage = "Memory printed"
	return m.reveals.Schedule(id, s.Text)
}
