package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "  Lisbon at dusk  ", "Lisbon at dusk"},
		{"tabs and control chars", "a\tb\x07c", "a bc"},
		{"line endings", "one\r\ntwo\rthree", "one\ntwo\nthree"},
		{"html", "<div><p>Tram &amp; pastel de nata</p></div>", "Tram & pastel de nata"},
		{"rtf", `{\rtf1\ansi{\fonttbl\f0 Helvetica;}\f0\fs24 Porto\par Ribeira \{quay\}}`, "Helvetica;Porto\nRibeira {quay}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanClipboardText(tt.input))
		})
	}
}

func TestIsHTML(t *testing.T) {
	assert.True(t, isHTML("<html><body>x</body></html>"))
	assert.True(t, isHTML("  <p>x</p>"))
	assert.False(t, isHTML("a < b"))
	assert.False(t, isHTML("<3 Rome"))
}
