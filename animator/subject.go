package animator

import (
	"github.com/matt-g-everett/anim8/attrimator"
)

// Attribute describes one animatable attribute of a subject.
type Attribute interface {
	Name() string
	// CloneDefault returns a fresh copy of the value used when the subject has none.
	CloneDefault() any
	// Parse converts raw input into a concrete value of the attribute.
	Parse(raw any) (any, bool)
	// Tween builds an event from start to end. Either may be any input Parse
	// accepts, or true for the current value.
	Tween(start, end any, t attrimator.Timing) (attrimator.Attrimator, error)
}

// Subject is anything with named attributes an Animator can drive.
type Subject interface {
	Attribute(name string) (Attribute, error)
	// Get returns the subject's own value of an attribute.
	Get(name string) (any, bool)
	// Apply receives the attributes that changed in a frame.
	Apply(values map[string]any)
}

// An Animation produces new attrimators every time it is played.
type Animation interface {
	Attrimators() (*attrimator.Map, error)
}
