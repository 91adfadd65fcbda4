package attrimator

import "errors"

var (
	ErrCycle   = errors.New("attrimator already in chain")
	ErrMissing = errors.New("no attrimator for attribute")
)
