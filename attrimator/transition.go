package attrimator

import (
	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
)

// Transition describes how a running attribute is carried into a new animation.
type Transition struct {
	// Time is the length of the bridge in milliseconds.
	Time float64
	// OutroDelta is how far ahead on the outgoing timeline the curve aims, as a
	// fraction of its duration.
	OutroDelta float64
	// IntroDelta, when positive, also aims the curve at the incoming path this
	// far in, giving a cubic bridge.
	IntroDelta float64
	Easing     easing.Func
	// Granularity, when positive, compiles the bridge into that many points.
	Granularity int
}

// DefaultTransition returns a half second quadratic bridge.
func DefaultTransition() Transition {
	return Transition{
		Time:       DefaultTransitionTime,
		OutroDelta: DefaultOutroDelta,
		Easing:     easing.Linear,
	}
}

// bridge builds the curve from the current value p0 through the outgoing
// projection p1 into the incoming start p2, optionally shaped by the incoming
// intro point p3, and wraps it in a one shot Event followed by incoming.
func bridge[T any](incoming Attrimator, c calc.Calculator[T], p0 T, from Attrimator, p2, p3 T, t Transition) Attrimator {
	attr := incoming.Attribute()

	p1 := p0
	if from != nil {
		if future, ok := from.Future(t.OutroDelta); ok {
			if v, ok := future.(T); ok {
				p1 = v
			}
		}
	}

	var curve path.Path[T]
	if t.IntroDelta > 0 {
		// Mirror the intro point about p2 so the curve still ends on p2 heading
		// the way the incoming path leaves it.
		c2 := c.Sub(c.Scale(p2, 2), p3)
		curve = path.NewCubic(attr, c, calc.Literal(p0), calc.Literal(p1), calc.Literal(c2), calc.Literal(p2))
	} else {
		curve = path.NewQuadratic(attr, c, calc.Literal(p0), calc.Literal(p1), calc.Literal(p2))
	}
	if t.Granularity > 0 {
		curve = path.NewCompiled(attr, curve, t.Granularity)
	}

	ease := t.Easing
	if ease == nil {
		ease = easing.Linear
	}

	e := NewEvent(attr, curve, Timing{
		Duration:        t.Time,
		Repeat:          1,
		Scale:           1,
		Easing:          ease,
		HasInitialState: true,
	})
	e.next = incoming
	return e
}
