package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	home := "/home/traveler"
	tests := []struct {
		name  string
		input string
		want  Config
	}{
		{
			name:  "defaults",
			input: "",
			want:  Config{Confirmations: true, ComposerOnStart: true},
		},
		{
			name: "all keys",
			input: `# travellog settings
savedirectory = ~/Documents/trips
confirmations=false
composeronstart = false
logfile=/tmp/travellog.log
`,
			want: Config{
				SaveDirectory:   filepath.Join(home, "Documents/trips"),
				Confirmations:   false,
				ComposerOnStart: false,
				LogFile:         "/tmp/travellog.log",
			},
		},
		{
			name:  "aliases and case",
			input: "SaveDir=/srv/pdf\nConfirm=TRUE\nlog_file=~/tl.log\n",
			want: Config{
				SaveDirectory:   "/srv/pdf",
				Confirmations:   true,
				ComposerOnStart: true,
				LogFile:         filepath.Join(home, "tl.log"),
			},
		},
		{
			name:  "malformed lines are skipped",
			input: "just words\n=\nunknown=1\nconfirmations\n",
			want:  Config{Confirmations: true, ComposerOnStart: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseConfig(strings.NewReader(tt.input), home)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestConfig_GetSavePath(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "travel-memories-log.pdf", c.GetSavePath("travel-memories-log.pdf"))

	c.SaveDirectory = "/srv/pdf"
	assert.Equal(t, "/srv/pdf/travel-memories-log.pdf", c.GetSavePath("travel-memories-log.pdf"))
}

func TestParseYAMLConfig(t *testing.T) {
	home := "/home/traveler"
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty keeps base",
			input: "",
			want:  Config{SaveDirectory: "/srv/pdf", Confirmations: true, ComposerOnStart: true},
		},
		{
			name: "overrides",
			input: `save_directory: ~/trips
confirmations: false
composer_on_start: false
log_file: /tmp/tl.log
`,
			want: Config{
				SaveDirectory:   filepath.Join(home, "trips"),
				Confirmations:   false,
				ComposerOnStart: false,
				LogFile:         "/tmp/tl.log",
			},
		},
		{
			name:  "absent booleans keep base",
			input: "log_file: /tmp/tl.log\n",
			want: Config{
				SaveDirectory:   "/srv/pdf",
				Confirmations:   true,
				ComposerOnStart: true,
				LogFile:         "/tmp/tl.log",
			},
		},
		{
			name:    "malformed",
			input:   "confirmations: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultConfig()
			config.SaveDirectory = "/srv/pdf"
			err := parseYAMLConfig(strings.NewReader(tt.input), config, home)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, *config)
		})
	}
}
