package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr = errors.New("addr must not be empty")
	ErrEmptyPath = errors.New("artifact paths must not be empty")
)
