package attrimator

import (
	"math"

	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
)

// Timing says when and how often an Event plays its path. Times are milliseconds.
type Timing struct {
	Delay    float64
	Duration float64
	Sleep    float64
	// Offset starts the event this far into its timeline.
	Offset float64
	// Repeat may be math.Inf(1).
	Repeat float64
	// Scale pulls values toward or away from the scale base.
	Scale  float64
	Easing easing.Func
	// HasInitialState writes the start of the path as soon as the event starts,
	// even while it is delayed.
	HasInitialState bool
}

// DefaultTiming returns a single one second play with the default easing.
func DefaultTiming() Timing {
	return Timing{
		Duration:        DefaultDuration,
		Repeat:          1,
		Scale:           1,
		Easing:          easing.Ease,
		HasInitialState: true,
	}
}

// Event plays a path over a duration after a delay, repeating with a sleep between
// each play.
type Event[T any] struct {
	Base
	timing    Timing
	calc      calc.Calculator[T]
	template  path.Path[T]
	path      path.Path[T]
	scaleBase calc.Value[T]
	base0     T
	state     State
	started   bool
}

// NewEvent creates an instance of an Event.
func NewEvent[T any](attribute string, p path.Path[T], t Timing) *Event[T] {
	e := new(Event[T])
	e.Base = newBase(attribute, t.Delay)
	e.offset = t.Offset
	if t.Easing == nil {
		t.Easing = easing.Ease
	}
	e.timing = t
	e.calc = p.Calculator()
	e.template = p
	e.path = p
	e.scaleBase = calc.Literal(e.calc.Create())
	e.state = Created
	return e
}

// WithScaleBase sets the value that scaling pulls toward.
func (e *Event[T]) WithScaleBase(v calc.Value[T]) *Event[T] {
	e.scaleBase = v
	return e
}

func (e *Event[T]) State() State { return e.state }

// Path returns the path resolved at start.
func (e *Event[T]) Path() path.Path[T] { return e.path }

func (e *Event[T]) Timing() Timing {
	t := e.timing
	t.Delay = e.delay
	return t
}

func (e *Event[T]) Start(now float64, frame *Frame) {
	e.reset(now)
	e.state = Created

	e.resolve(frame)

	if e.timing.HasInitialState && frame != nil {
		if v, ok := e.valueAtDelta(0); ok {
			frame.Set(e.attribute, v)
		}
	}
}

// resolve fixes the computed points and scale base against the current value.
func (e *Event[T]) resolve(frame *Frame) {
	current := currentValue(e.calc, frame, e.attribute)
	e.path = e.resolvedPath(current)
	e.base0 = e.scaleBase.Resolve(e.calc, current)
	e.started = true
}

func (e *Event[T]) SetTime(now float64, frame *Frame) {
	setTime(e, now, frame)
}

func (e *Event[T]) Update(elapsed float64, frame *Frame) {
	if e.state == Finished {
		return
	}

	delta, state := e.progress(elapsed)
	prev := e.state
	e.state = state
	if state == Finished {
		e.finished = true
	}

	// Write while animating, and once when leaving animation or when skipping
	// straight past it so the last value is never lost.
	write := state == Animating || (state != prev && state != Delayed && prev != Sleeping)
	if write {
		e.write(frame, delta)
	}
}

func (e *Event[T]) Finish(frame *Frame) {
	if !e.started {
		e.resolve(frame)
	}
	e.write(frame, 1)
	e.state = Finished
	e.finished = true
}

// progress returns the path delta and state elapsed milliseconds after start.
func (e *Event[T]) progress(elapsed float64) (float64, State) {
	t := e.timing
	active := elapsed - e.delay
	if active < 0 {
		return 0, Delayed
	}

	cycle := t.Duration + t.Sleep
	if cycle <= 0 || t.Repeat <= 0 {
		return 1, Finished
	}

	iteration := math.Floor((active + t.Sleep) / cycle)
	if iteration >= t.Repeat || active >= e.activeTime() {
		return 1, Finished
	}

	local := active - math.Floor(active/cycle)*cycle
	if local >= t.Duration {
		return 1, Sleeping
	}
	return local / t.Duration, Animating
}

// activeTime is how long the event plays once its delay has passed.
func (e *Event[T]) activeTime() float64 {
	t := e.timing
	if math.IsInf(t.Repeat, 1) {
		return math.Inf(1)
	}
	return t.Repeat*t.Duration + (t.Repeat-1)*t.Sleep
}

func (e *Event[T]) write(frame *Frame, delta float64) {
	if frame == nil {
		return
	}
	if v, ok := e.valueAtDelta(delta); ok {
		frame.Set(e.attribute, v)
	}
}

func (e *Event[T]) valueAtDelta(delta float64) (T, bool) {
	v, ok := e.path.Compute(e.timing.Easing(delta))
	if !ok {
		return v, false
	}
	return e.scale(v), true
}

func (e *Event[T]) scale(v T) T {
	if e.timing.Scale == 1 {
		return v
	}
	return e.calc.Adds(e.base0, e.calc.Sub(v, e.base0), e.timing.Scale)
}

func (e *Event[T]) resolvedPath(current T) path.Path[T] {
	if e.template.HasComputed() {
		return e.template.Resolve(current)
	}
	return e.template
}

func (e *Event[T]) ValueAt(elapsed float64) (any, bool) {
	if elapsed < e.delay && !e.timing.HasInitialState {
		return nil, false
	}
	delta, _ := e.progress(elapsed)
	v, ok := e.valueAtDelta(delta)
	if !ok {
		return nil, false
	}
	return v, true
}

func (e *Event[T]) Future(outroDelta float64) (any, bool) {
	return e.ValueAt(e.elapsed + outroDelta*e.timing.Duration)
}

func (e *Event[T]) TotalTime() float64 {
	return math.Min(e.stopTime, e.delay+e.activeTime())
}

func (e *Event[T]) TimeRemaining() float64 {
	return remaining(e)
}

func (e *Event[T]) IsInfinite() bool {
	return infinite(e, math.IsInf(e.timing.Repeat, 1) || math.IsInf(e.TotalTime(), 1))
}

func (e *Event[T]) HasComputed() bool {
	return e.template.HasComputed() || e.scaleBase.IsComputed()
}

func (e *Event[T]) Clone() Attrimator {
	c := NewEvent(e.attribute, e.template, e.timing)
	c.scaleBase = e.scaleBase
	c.copyTiming(&e.Base)
	return c
}

// startPoint is where the event's path begins and the value introDelta into it,
// resolved against the current value.
func (e *Event[T]) startPoint(current T, introDelta float64) (T, T) {
	p := e.resolvedPath(current)
	base0 := e.scaleBase.Resolve(e.calc, current)
	scale := func(v T) T {
		if e.timing.Scale == 1 {
			return v
		}
		return e.calc.Adds(base0, e.calc.Sub(v, base0), e.timing.Scale)
	}

	first, ok := p.Compute(0)
	if !ok {
		first = p.Point(0)
	}
	intro, ok := p.Compute(introDelta)
	if !ok {
		intro = first
	}
	return scale(first), scale(intro)
}

func (e *Event[T]) Bridge(from Attrimator, frame *Frame, t Transition) Attrimator {
	current := currentValue(e.calc, frame, e.attribute)
	first, intro := e.startPoint(current, t.IntroDelta)
	return bridge[T](e, e.calc, current, from, first, intro, t)
}
