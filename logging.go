package main

import "go.uber.org/zap"

// newLogger writes to path. The terminal is taken by the UI, so without a log file
// nothing is logged.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
