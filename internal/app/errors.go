package app

import "errors"

// Run always returns one of these; main picks the log level from it.
var (
	ErrAppStartup           = errors.New("app startup error")
	ErrAppShutdownNormal    = errors.New("app shutdown normal")
	ErrAppShutdownWithError = errors.New("app shutdown with error")
)
