package mochi

import "errors"

var (
	// ErrInvalidState is returned when a State is out of its defined range.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidActivity is returned when an Activity is out of its defined range.
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrInvalidTheme is returned when a Theme is out of its defined range.
	ErrInvalidTheme = errors.New("invalid theme")
)
