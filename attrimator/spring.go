package attrimator

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/matt-g-everett/anim8/calc"
)

// A Force decides how a spring's velocity changes over dt seconds.
type Force[T any] interface {
	UpdateVelocity(c calc.Calculator[T], position, velocity, rest T, dt float64) T
}

// LinearForce pulls each component toward rest independently:
// v' = stiffness*(rest - position) - damping*v.
type LinearForce[T any] struct {
	Stiffness T
	Damping   T
}

func (f LinearForce[T]) UpdateVelocity(c calc.Calculator[T], position, velocity, rest T, dt float64) T {
	pull := c.Mul(f.Stiffness, c.Sub(rest, position))
	accel := c.Sub(pull, c.Mul(f.Damping, velocity))
	return c.Adds(velocity, accel, dt)
}

// DistanceForce pulls the position toward a point Distance away from rest along
// the line between them.
type DistanceForce[T any] struct {
	Distance  float64
	Stiffness float64
	Damping   float64
}

func (f DistanceForce[T]) UpdateVelocity(c calc.Calculator[T], position, velocity, rest T, dt float64) T {
	accel := c.Create()
	if d := c.Distance(position, rest); d != 0 {
		toward := c.Scale(c.Sub(rest, position), 1.0/d)
		accel = c.Scale(toward, (d-f.Distance)*f.Stiffness)
	}
	accel = c.Adds(accel, velocity, -f.Damping)
	return c.Adds(velocity, accel, dt)
}

// HarmonicForce is a damped harmonic oscillator per component. A damping ratio
// below one oscillates, one settles as fast as possible without overshoot.
type HarmonicForce[T any] struct {
	Frequency    float64
	DampingRatio float64
}

func (f HarmonicForce[T]) UpdateVelocity(c calc.Calculator[T], position, velocity, rest T, dt float64) T {
	if dt <= 0 {
		return velocity
	}
	s := harmonica.NewSpring(dt, f.Frequency, f.DampingRatio)
	out := velocity
	for i := 0; i < c.Dimensions(); i++ {
		_, v := s.Update(c.Component(position, i), c.Component(velocity, i), c.Component(rest, i))
		out = c.WithComponent(out, i, v)
	}
	return out
}

// SpringOptions are the starting conditions of a Spring. Computed values resolve
// against the current value when the spring starts.
type SpringOptions[T any] struct {
	Rest         calc.Value[T]
	Position     calc.Value[T]
	Velocity     calc.Value[T]
	Gravity      calc.Value[T]
	FinishOnRest bool
	Delay        float64
}

// DefaultSpringOptions rests and starts at the current value.
func DefaultSpringOptions[T any]() SpringOptions[T] {
	return SpringOptions[T]{
		Rest:     calc.Current[T](),
		Position: calc.Current[T](),
	}
}

// Spring moves an attribute by integrating a Force until it comes to rest.
type Spring[T any] struct {
	Base
	calc    calc.Calculator[T]
	force   Force[T]
	options SpringOptions[T]

	rest     T
	position T
	velocity T
	gravity  T
	last     float64
}

// NewSpring creates an instance of a Spring.
func NewSpring[T any](attribute string, c calc.Calculator[T], force Force[T], o SpringOptions[T]) *Spring[T] {
	s := new(Spring[T])
	s.Base = newBase(attribute, o.Delay)
	s.calc = c
	s.force = force
	s.options = o
	s.resolve(c.Create())
	return s
}

func (s *Spring[T]) resolve(current T) {
	s.rest = s.options.Rest.Resolve(s.calc, current)
	s.position = s.options.Position.Resolve(s.calc, current)
	s.velocity = s.options.Velocity.Resolve(s.calc, current)
	s.gravity = s.options.Gravity.Resolve(s.calc, current)
}

func (s *Spring[T]) Position() T { return s.position }
func (s *Spring[T]) Velocity() T { return s.velocity }
func (s *Spring[T]) Rest() T     { return s.rest }

// SetRest moves the point the spring is pulled toward.
func (s *Spring[T]) SetRest(rest T) {
	s.rest = rest
}

func (s *Spring[T]) Start(now float64, frame *Frame) {
	s.reset(now)
	s.last = 0
	s.resolve(currentValue(s.calc, frame, s.attribute))
}

func (s *Spring[T]) SetTime(now float64, frame *Frame) {
	setTime(s, now, frame)
}

func (s *Spring[T]) Update(elapsed float64, frame *Frame) {
	if elapsed < s.delay {
		return
	}

	dt := math.Min((elapsed-math.Max(s.last, s.delay))*0.001, MaxSpringDT)
	s.last = elapsed
	if dt <= 0 {
		return
	}

	c := s.calc
	starting := s.position

	s.velocity = s.force.UpdateVelocity(c, s.position, s.velocity, s.rest, dt)
	s.velocity = c.Adds(s.velocity, s.gravity, dt)
	s.position = c.Adds(s.position, s.velocity, dt)

	if !c.IsEqual(starting, s.position, SpringEpsilon) {
		frame.Set(s.attribute, s.position)
	} else if s.options.FinishOnRest && c.IsZero(s.velocity, SpringEpsilon) {
		s.finished = true
	}
}

func (s *Spring[T]) Finish(frame *Frame) {
	s.finished = true
}

func (s *Spring[T]) ValueAt(elapsed float64) (any, bool) {
	return s.position, true
}

// Future projects the position outroDelta seconds ahead at the current velocity.
func (s *Spring[T]) Future(outroDelta float64) (any, bool) {
	return s.calc.Adds(s.position, s.velocity, outroDelta), true
}

func (s *Spring[T]) TotalTime() float64 {
	return s.stopTime
}

func (s *Spring[T]) TimeRemaining() float64 {
	return remaining(s)
}

func (s *Spring[T]) IsInfinite() bool {
	return infinite(s, math.IsInf(s.TotalTime(), 1))
}

func (s *Spring[T]) HasComputed() bool {
	o := s.options
	return o.Rest.IsComputed() || o.Position.IsComputed() || o.Velocity.IsComputed() || o.Gravity.IsComputed()
}

func (s *Spring[T]) Clone() Attrimator {
	c := NewSpring(s.attribute, s.calc, s.force, s.options)
	c.copyTiming(&s.Base)
	return c
}

func (s *Spring[T]) Bridge(from Attrimator, frame *Frame, t Transition) Attrimator {
	current := currentValue(s.calc, frame, s.attribute)
	start := s.options.Position.Resolve(s.calc, current)
	return bridge[T](s, s.calc, current, from, start, start, t)
}
