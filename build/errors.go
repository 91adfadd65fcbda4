package build

import "errors"

var (
	ErrUnknownAttribute  = errors.New("unknown attribute")
	ErrUnknownCalculator = errors.New("unknown calculator")
	ErrUnknownPath       = errors.New("unknown path")
	ErrUnknownSpring     = errors.New("unknown spring")
	ErrUnknownAnimation  = errors.New("unknown animation")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrInvalidValue      = errors.New("invalid value")
	ErrNoAttrimators     = errors.New("animation has no attrimators")
)
