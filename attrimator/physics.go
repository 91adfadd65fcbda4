package attrimator

import (
	"math"

	"github.com/matt-g-everett/anim8/calc"
)

// PhysicsOptions are the starting conditions of a Physics attrimator. Velocity
// and acceleration are per second.
type PhysicsOptions[T any] struct {
	Position     calc.Value[T]
	Velocity     calc.Value[T]
	Acceleration calc.Value[T]
	// VelocitySource and AccelerationSource, when set, are added each step and
	// receive the milliseconds elapsed since start.
	VelocitySource     func(elapsed float64) T
	AccelerationSource func(elapsed float64) T
	// Terminal caps the speed. Zero or math.Inf(1) means no cap.
	Terminal float64
	Delay    float64
}

// DefaultPhysicsOptions starts at the current value at rest.
func DefaultPhysicsOptions[T any]() PhysicsOptions[T] {
	return PhysicsOptions[T]{
		Position: calc.Current[T](),
		Terminal: math.Inf(1),
	}
}

// Physics moves an attribute with a velocity and acceleration until stopped.
type Physics[T any] struct {
	Base
	calc    calc.Calculator[T]
	options PhysicsOptions[T]

	position0     T
	velocity0     T
	acceleration0 T

	position     T
	velocity     T
	acceleration T
	last         float64
}

// NewPhysics creates an instance of a Physics.
func NewPhysics[T any](attribute string, c calc.Calculator[T], o PhysicsOptions[T]) *Physics[T] {
	p := new(Physics[T])
	p.Base = newBase(attribute, o.Delay)
	p.calc = c
	p.options = o
	p.resolve(c.Create())
	return p
}

func (p *Physics[T]) resolve(current T) {
	c := p.calc
	p.position0 = p.options.Position.Resolve(c, current)
	p.velocity0 = p.options.Velocity.Resolve(c, current)
	p.acceleration0 = p.options.Acceleration.Resolve(c, current)
	p.position = p.position0
	p.velocity = p.velocity0
	p.acceleration = p.acceleration0
}

func (p *Physics[T]) Position() T { return p.position }
func (p *Physics[T]) Velocity() T { return p.velocity }

func (p *Physics[T]) terminal() bool {
	t := p.options.Terminal
	return t > 0 && !math.IsInf(t, 1)
}

// analytic reports whether the motion has a closed form.
func (p *Physics[T]) analytic() bool {
	return p.options.VelocitySource == nil && p.options.AccelerationSource == nil && !p.terminal()
}

func (p *Physics[T]) Start(now float64, frame *Frame) {
	p.reset(now)
	p.last = 0
	p.resolve(currentValue(p.calc, frame, p.attribute))
}

func (p *Physics[T]) SetTime(now float64, frame *Frame) {
	setTime(p, now, frame)
}

func (p *Physics[T]) Update(elapsed float64, frame *Frame) {
	if elapsed < p.delay {
		return
	}

	if p.analytic() {
		t := (elapsed - p.delay) * 0.001
		p.position = p.at(t)
		p.velocity = p.calc.Adds(p.velocity0, p.acceleration0, t)
		frame.Set(p.attribute, p.position)
		p.last = elapsed
		return
	}

	from := math.Max(p.last, p.delay)
	p.last = elapsed
	for from < elapsed {
		step := math.Min(elapsed-from, MaxPhysicsDT*1000)
		p.step(from+step, step*0.001)
		from += step
	}
	frame.Set(p.attribute, p.position)
}

func (p *Physics[T]) step(elapsed, dt float64) {
	c := p.calc
	acc := p.acceleration
	if p.options.AccelerationSource != nil {
		acc = c.Add(acc, p.options.AccelerationSource(elapsed))
	}
	p.velocity = c.Adds(p.velocity, acc, dt)
	if p.terminal() {
		p.velocity = c.Clamp(p.velocity, 0, p.options.Terminal)
	}

	vel := p.velocity
	if p.options.VelocitySource != nil {
		vel = c.Add(vel, p.options.VelocitySource(elapsed))
	}
	p.position = c.Adds(p.position, vel, dt)
}

// at is the closed form position t seconds after the delay.
func (p *Physics[T]) at(t float64) T {
	c := p.calc
	v := c.Adds(p.position0, p.velocity0, t)
	return c.Adds(v, p.acceleration0, 0.5*t*t)
}

func (p *Physics[T]) Finish(frame *Frame) {
	p.finished = true
}

// ValueAt is exact for closed form motion and the simulated position otherwise.
func (p *Physics[T]) ValueAt(elapsed float64) (any, bool) {
	if !p.analytic() {
		return p.position, true
	}
	t := math.Max(0, elapsed-p.delay) * 0.001
	return p.at(t), true
}

func (p *Physics[T]) Future(outroDelta float64) (any, bool) {
	if !p.analytic() {
		return p.calc.Adds(p.position, p.velocity, outroDelta), true
	}
	return p.ValueAt(p.elapsed + outroDelta*1000)
}

func (p *Physics[T]) TotalTime() float64 {
	return p.stopTime
}

func (p *Physics[T]) TimeRemaining() float64 {
	return remaining(p)
}

func (p *Physics[T]) IsInfinite() bool {
	return infinite(p, math.IsInf(p.TotalTime(), 1))
}

func (p *Physics[T]) HasComputed() bool {
	o := p.options
	return o.Position.IsComputed() || o.Velocity.IsComputed() || o.Acceleration.IsComputed()
}

func (p *Physics[T]) Clone() Attrimator {
	c := NewPhysics(p.attribute, p.calc, p.options)
	c.copyTiming(&p.Base)
	return c
}

func (p *Physics[T]) Bridge(from Attrimator, frame *Frame, t Transition) Attrimator {
	current := currentValue(p.calc, frame, p.attribute)
	start := p.options.Position.Resolve(p.calc, current)
	return bridge[T](p, p.calc, current, from, start, p.calc.Adds(start, p.velocity0, t.IntroDelta), t)
}
