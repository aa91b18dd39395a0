package runes

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientQuantity is returned when removing more runes than are owned.
	ErrInsufficientQuantity = errors.New("insufficient rune quantity")
	// ErrInvalidQuantity is returned for non-positive add/remove amounts.
	ErrInvalidQuantity = errors.New("rune quantity must be positive")
	// ErrUnknownRune is returned when a name does not resolve against the table.
	ErrUnknownRune = errors.New("unknown rune")
)

// InsufficientQuantityError reports a rejected removal.
type InsufficientQuantityError struct {
	Rune      Rune
	Requested int
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cannot toss %s (x%d): only %d owned", e.Rune.Name, e.Requested, e.Available)
}

func (e *InsufficientQuantityError) Unwrap() error {
	return ErrInsufficientQuantity
}

// UnknownNameError reports a name that failed to resolve, with an optional
// closest match. It is shared by the rune, item type and runeword catalogs.
type UnknownNameError struct {
	Kind       string
	Name       string
	Suggestion string
	sentinel   error
}

// NewUnknownNameError builds an UnknownNameError that unwraps to sentinel.
func NewUnknownNameError(kind, name, suggestion string, sentinel error) *UnknownNameError {
	return &UnknownNameError{Kind: kind, Name: name, Suggestion: suggestion, sentinel: sentinel}
}

func (e *UnknownNameError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no such %s %q (did you mean %q?)", e.Kind, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("no such %s %q", e.Kind, e.Name)
}

func (e *UnknownNameError) Unwrap() error {
	return e.sentinel
}
