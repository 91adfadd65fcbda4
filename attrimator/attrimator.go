package attrimator

import (
	"math"

	"github.com/matt-g-everett/anim8/calc"
)

// Times are milliseconds.
const (
	DefaultDuration       = 1000.0
	DefaultTransitionTime = 500.0
	DefaultOutroDelta     = 0.1
	DefaultIntroDelta     = 0.1

	// MaxSpringDT and MaxPhysicsDT cap a simulation step in seconds so long gaps
	// between frames do not blow up the integration.
	MaxSpringDT  = 0.1
	MaxPhysicsDT = 0.1
	// SpringEpsilon decides when a spring has stopped moving.
	SpringEpsilon = 0.0001
)

// State is the lifecycle state of an Event.
type State int

const (
	Created State = iota
	Delayed
	Animating
	Sleeping
	Finished
)

func (s State) String() string {
	return [...]string{"created", "delayed", "animating", "sleeping", "finished"}[s]
}

// An Attrimator animates exactly one attribute over time.
type Attrimator interface {
	Attribute() string

	// Start captures the start time and resolves computed values against the
	// current values in the frame.
	Start(now float64, frame *Frame)
	// SetTime advances to now, writing into the frame when the value changes.
	SetTime(now float64, frame *Frame)
	// Update advances to elapsed milliseconds since start.
	Update(elapsed float64, frame *Frame)
	// Finish forces the final state regardless of timing.
	Finish(frame *Frame)
	IsFinished() bool

	// ValueAt returns the value elapsed milliseconds after start, if it has one.
	ValueAt(elapsed float64) (any, bool)
	// Future projects the value a fraction of the timeline ahead of now.
	Future(outroDelta float64) (any, bool)

	TotalTime() float64
	// TimeRemaining includes every queued successor.
	TimeRemaining() float64
	IsInfinite() bool
	HasComputed() bool

	// Clone returns an unstarted copy of the attrimator and its chain.
	Clone() Attrimator

	// Bridge returns an attrimator that carries the attribute from its value in
	// the frame into the receiver, which is queued after the bridge.
	Bridge(from Attrimator, frame *Frame, t Transition) Attrimator

	Pause(now float64)
	Resume(now float64)
	IsPaused() bool
	StopIn(ms float64)
	Elapsed() float64
	StartTime() float64
	Delay() float64
	AddDelay(ms float64)

	Next() Attrimator
	// Queue appends next to the end of the chain.
	Queue(next Attrimator) error

	base() *Base
}

// Base holds the timing state shared by every attrimator.
type Base struct {
	attribute string
	delay     float64
	offset    float64
	startTime float64
	pauseTime float64
	elapsed   float64
	stopTime  float64
	paused    bool
	finished  bool
	next      Attrimator
}

func newBase(attribute string, delay float64) Base {
	return Base{
		attribute: attribute,
		delay:     delay,
		stopTime:  math.Inf(1),
	}
}

func (b *Base) base() *Base { return b }

func (b *Base) Attribute() string   { return b.attribute }
func (b *Base) Delay() float64      { return b.delay }
func (b *Base) Offset() float64     { return b.offset }
func (b *Base) AddDelay(ms float64) { b.delay += ms }
func (b *Base) StartTime() float64  { return b.startTime }
func (b *Base) Elapsed() float64    { return b.elapsed }
func (b *Base) IsPaused() bool      { return b.paused }
func (b *Base) IsFinished() bool    { return b.finished }
func (b *Base) Next() Attrimator    { return b.next }

// StopIn cuts the attrimator off ms after its current elapsed time.
func (b *Base) StopIn(ms float64) {
	b.stopTime = b.elapsed + ms
}

func (b *Base) Pause(now float64) {
	if !b.paused {
		b.pauseTime = now
		b.paused = true
	}
}

// Resume shifts the start time by the time spent paused.
func (b *Base) Resume(now float64) {
	if b.paused {
		b.startTime += now - b.pauseTime
		b.paused = false
	}
}

// Queue fails with ErrCycle when next shares any node with the chain.
func (b *Base) Queue(next Attrimator) error {
	if next == nil {
		return nil
	}
	chain := map[*Base]bool{b: true}
	tail := b
	for tail.next != nil {
		tail = tail.next.base()
		chain[tail] = true
	}
	for n := next; n != nil; n = n.Next() {
		if chain[n.base()] {
			return ErrCycle
		}
	}
	tail.next = next
	return nil
}

// reset starts the timeline offset milliseconds in.
func (b *Base) reset(now float64) {
	b.startTime = now - b.offset
	b.elapsed = b.offset
	b.finished = false
	b.paused = false
}

// copyTiming copies what a clone keeps: delay, offset, stop time and a cloned chain.
func (b *Base) copyTiming(from *Base) {
	b.delay = from.delay
	b.offset = from.offset
	b.stopTime = from.stopTime
	if from.next != nil {
		b.next = from.next.Clone()
	}
}

// setTime is the SetTime shared by every attrimator.
func setTime(a Attrimator, now float64, frame *Frame) {
	b := a.base()
	if b.paused || b.finished {
		return
	}
	b.elapsed = now - b.startTime
	if b.elapsed > b.stopTime {
		a.Finish(frame)
		return
	}
	a.Update(b.elapsed, frame)
}

// remaining is the TimeRemaining shared by every attrimator.
func remaining(a Attrimator) float64 {
	r := math.Max(0, a.TotalTime()-a.Elapsed())
	if next := a.Next(); next != nil {
		r += next.TimeRemaining()
	}
	return r
}

// infinite reports whether the attrimator or anything queued after it never ends.
func infinite(a Attrimator, self bool) bool {
	if self {
		return true
	}
	if next := a.Next(); next != nil {
		return next.IsInfinite()
	}
	return false
}

// currentValue reads the value of attr from the frame as a T.
func currentValue[T any](c calc.Calculator[T], frame *Frame, attr string) T {
	if frame == nil {
		return c.Create()
	}
	raw, ok := frame.Get(attr)
	if !ok {
		return c.Create()
	}
	if v, ok := raw.(T); ok {
		return v
	}
	if v, ok := c.Parse(raw, c.Create()); ok && !v.IsComputed() {
		return v.Value
	}
	return c.Create()
}
