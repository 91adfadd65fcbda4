package easing

import "errors"

var (
	ErrUnknownEasing = errors.New("unknown easing")
	ErrUnknownType   = errors.New("unknown easing type")
)
