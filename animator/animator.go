package animator

import (
	"math"
	"sort"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/sgostarter/i/l"
)

type pendingStart struct {
	a     attrimator.Attrimator
	at    float64
	timed bool
}

// Animator drives the attrimators of one subject and composes their values into
// a frame each tick.
type Animator struct {
	subject     Subject
	loop        *Loop
	logger      l.Wrapper
	attrimators *attrimator.Map
	pending     []pendingStart
	frame       *attrimator.Frame
	events      *listeners[*Animator]

	now         float64
	finished    bool
	wasFinished bool
	active      bool
	iterating   int
	deferred    []func() error
}

// NewAnimator creates an instance of an Animator. With a nil loop the caller
// runs the phases itself.
func NewAnimator(subject Subject, loop *Loop, logger l.Wrapper) *Animator {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	a := new(Animator)
	a.subject = subject
	a.loop = loop
	a.logger = logger.WithFields(l.StringField(l.ClsKey, "animatorImpl"))
	a.attrimators = attrimator.NewMap()
	a.frame = attrimator.NewFrame()
	a.events = newListeners[*Animator]()
	return a
}

func (a *Animator) Subject() Subject { return a.subject }

// Frame returns the frame the attrimators write into.
func (a *Animator) Frame() *attrimator.Frame { return a.frame }

// Attrimators returns the live chains. Callers must not mutate it while the
// animator is ticking.
func (a *Animator) Attrimators() *attrimator.Map { return a.attrimators }

func (a *Animator) IsFinished() bool { return a.finished }
func (a *Animator) IsActive() bool   { return a.active }

// On calls fn every time e happens until the returned func is called.
func (a *Animator) On(e Event, fn func(*Animator)) (off func()) {
	return a.events.add(e, fn, false)
}

// Once calls fn the next time e happens.
func (a *Animator) Once(e Event, fn func(*Animator)) (off func()) {
	return a.events.add(e, fn, true)
}

// mutate runs fn now, or after the current phase when the animator is iterating.
func (a *Animator) mutate(fn func() error) error {
	if a.iterating > 0 {
		a.deferred = append(a.deferred, fn)
		return nil
	}
	return fn()
}

func (a *Animator) begin() {
	a.iterating++
}

func (a *Animator) done() {
	a.iterating--
	if a.iterating > 0 {
		return
	}
	for len(a.deferred) > 0 {
		fns := a.deferred
		a.deferred = nil
		for _, fn := range fns {
			if err := fn(); err != nil {
				a.logger.WithFields(l.ErrorField(err)).Error("deferred change failed")
			}
		}
	}
}

// Preupdate starts the attrimators placed since the last tick.
func (a *Animator) Preupdate(now float64) {
	a.now = now
	a.begin()
	pending := a.pending
	a.pending = nil
	for _, p := range pending {
		attr := p.a.Attribute()
		if current, ok := a.attrimators.Get(attr); !ok || current != p.a {
			continue
		}
		a.setDefault(attr)
		start := now
		if p.timed {
			start = p.at
		}
		p.a.Start(start, a.frame)
	}
	a.done()
	a.events.trigger(EventPreupdate, a)
}

func (a *Animator) setDefault(attr string) {
	if a.frame.Has(attr) {
		return
	}
	if v, ok := a.subject.Get(attr); ok {
		a.frame.Init(attr, v)
		return
	}
	attribute, err := a.subject.Attribute(attr)
	if err != nil {
		a.logger.WithFields(l.ErrorField(err), l.StringField("attribute", attr)).Error("no default value")
		return
	}
	a.frame.Init(attr, attribute.CloneDefault())
}

func (a *Animator) isPending(x attrimator.Attrimator) bool {
	for _, p := range a.pending {
		if p.a == x {
			return true
		}
	}
	return false
}

// Update advances every started attrimator to now.
func (a *Animator) Update(now float64) {
	a.now = now
	a.wasFinished = a.finished
	a.finished = true

	a.begin()
	for _, x := range a.attrimators.Values() {
		if a.isPending(x) {
			a.finished = false
			continue
		}
		x.SetTime(now, a.frame)
		x = a.promote(x, now)
		a.finished = a.finished && x.IsFinished()
	}
	a.done()
	a.events.trigger(EventUpdate, a)
}

// promote replaces finished attrimators with their successors, starting each
// where its predecessor ended and bringing it up to now in the same tick.
func (a *Animator) promote(x attrimator.Attrimator, now float64) attrimator.Attrimator {
	for x.IsFinished() && x.Next() != nil {
		next := x.Next()
		a.attrimators.Put(next)
		next.Start(math.Min(now, x.StartTime()+x.TotalTime()), a.frame)
		next.SetTime(now, a.frame)
		x = next
	}
	return x
}

// Apply hands the attributes that changed to the subject.
func (a *Animator) Apply() {
	if values := a.frame.Flush(); len(values) > 0 {
		a.begin()
		a.subject.Apply(values)
		a.done()
	}
	a.events.trigger(EventApply, a)
}

// Trim drops finished attrimators and starts their successors where they ended.
func (a *Animator) Trim(now float64) {
	a.now = now
	a.begin()
	for i := a.attrimators.Size() - 1; i >= 0; i-- {
		x := a.attrimators.At(i)
		if !x.IsFinished() {
			continue
		}
		if next := x.Next(); next != nil {
			a.placeAt(next, math.Min(now, x.StartTime()+x.TotalTime()), true)
		} else {
			a.attrimators.RemoveAt(i)
		}
	}
	a.done()

	if !a.wasFinished && a.finished {
		a.logger.Debug("finished")
		a.events.trigger(EventFinished, a)
	}
}

func (a *Animator) deactivate() {
	a.active = false
	a.events.trigger(EventDeactivate, a)
}

func (a *Animator) activate() {
	if a.loop != nil {
		a.loop.Add(a)
	}
}

func (a *Animator) placeAt(x attrimator.Attrimator, at float64, timed bool) {
	a.attrimators.Put(x)
	a.pending = append(a.pending, pendingStart{a: x, at: at, timed: timed})
	a.finished = false
}

func (a *Animator) place(x attrimator.Attrimator) {
	a.placeAt(x, 0, false)
}

// Place replaces the chain of x's attribute with x, starting it next tick.
func (a *Animator) Place(x attrimator.Attrimator) {
	_ = a.mutate(func() error {
		a.place(x)
		return nil
	})
	a.activate()
}

// Spring places a spring or any other attrimator.
func (a *Animator) Spring(x attrimator.Attrimator) {
	a.Place(x)
}

// PlayAttrimators places every chain of m. With all set, attrimators for
// attributes m does not animate are finished.
func (a *Animator) PlayAttrimators(m *attrimator.Map, all bool) {
	_ = a.mutate(func() error {
		if all {
			a.finishMissing(m)
		}
		values := m.Values()
		for i := len(values) - 1; i >= 0; i-- {
			a.place(values[i])
		}
		return nil
	})
	a.activate()
}

func (a *Animator) finishMissing(m *attrimator.Map) {
	for _, x := range a.attrimators.Values() {
		if !m.Has(x.Attribute()) {
			x.Finish(a.frame)
		}
	}
}

func (a *Animator) Play(anim Animation, all bool) error {
	m, err := anim.Attrimators()
	if err != nil {
		return err
	}
	a.PlayAttrimators(m, all)
	return nil
}

// QueueAttrimators starts m once the current finite chains have finished.
// Attributes with nothing to follow are delayed from the last tick, which is
// when the remaining times were measured.
func (a *Animator) QueueAttrimators(m *attrimator.Map) error {
	err := a.mutate(func() error {
		busy := a.attrimators.Size() > 0
		return a.attrimators.QueueMap(m, func(x attrimator.Attrimator) {
			a.pending = append(a.pending, pendingStart{a: x, at: a.now, timed: busy})
			a.finished = false
		})
	})
	a.activate()
	return err
}

func (a *Animator) Queue(anim Animation) error {
	m, err := anim.Attrimators()
	if err != nil {
		return err
	}
	return a.QueueAttrimators(m)
}

// TransitionAttrimators bridges every attribute already animating into its
// chain in m and delays the rest by the transition time.
func (a *Animator) TransitionAttrimators(t attrimator.Transition, m *attrimator.Map, all bool) {
	_ = a.mutate(func() error {
		if all {
			a.finishMissing(m)
		}
		current := a.attrimators
		values := m.Values()
		overlap := current.HasOverlap(m)
		for i := len(values) - 1; i >= 0; i-- {
			in := values[i]
			if !overlap {
				a.place(in)
				continue
			}
			attr := in.Attribute()
			if out, ok := current.Get(attr); ok {
				a.setDefault(attr)
				a.place(in.Bridge(out, a.frame, t))
			} else {
				in.AddDelay(t.Time)
				a.place(in)
			}
		}
		return nil
	})
	a.activate()
}

func (a *Animator) Transition(t attrimator.Transition, anim Animation, all bool) error {
	m, err := anim.Attrimators()
	if err != nil {
		return err
	}
	a.TransitionAttrimators(t, m, all)
	return nil
}

// each calls fn for the named attributes, or all of them when none are named.
func (a *Animator) each(attrs []string, fn func(x attrimator.Attrimator)) {
	if len(attrs) == 0 {
		for _, x := range a.attrimators.Values() {
			fn(x)
		}
		return
	}
	for _, attr := range attrs {
		if x, ok := a.attrimators.Get(attr); ok {
			fn(x)
		}
	}
}

func (a *Animator) dropPending(x attrimator.Attrimator) {
	out := a.pending[:0]
	for _, p := range a.pending {
		if p.a != x {
			out = append(out, p)
		}
	}
	a.pending = out
}

// Stop removes attrimators leaving their last values in place.
func (a *Animator) Stop(attrs ...string) {
	_ = a.mutate(func() error {
		a.each(attrs, func(x attrimator.Attrimator) {
			a.attrimators.Remove(x.Attribute())
			a.dropPending(x)
		})
		return nil
	})
}

// End jumps each attribute to the end of the last attrimator queued for it,
// skipping everything before.
func (a *Animator) End(attrs ...string) {
	_ = a.mutate(func() error {
		a.each(attrs, func(x attrimator.Attrimator) {
			tail := x
			for tail.Next() != nil {
				tail = tail.Next()
			}
			tail.Finish(a.frame)
			if tail != x {
				a.dropPending(x)
				a.attrimators.Put(tail)
			}
		})
		return nil
	})
}

// Finish finishes the running attrimators, letting queued ones follow.
func (a *Animator) Finish(attrs ...string) {
	_ = a.mutate(func() error {
		a.each(attrs, func(x attrimator.Attrimator) {
			x.Finish(a.frame)
		})
		return nil
	})
}

func (a *Animator) Pause(attrs ...string) {
	a.each(attrs, func(x attrimator.Attrimator) {
		x.Pause(a.now)
	})
}

func (a *Animator) Resume(attrs ...string) {
	a.each(attrs, func(x attrimator.Attrimator) {
		x.Resume(a.now)
	})
}

// Set writes values straight to the frame and applies them.
func (a *Animator) Set(values map[string]any) {
	for attr, v := range values {
		a.frame.Set(attr, v)
	}
	a.Apply()
}

// Unset stops the attributes and forgets their values.
func (a *Animator) Unset(attrs ...string) {
	_ = a.mutate(func() error {
		for _, attr := range attrs {
			if x, ok := a.attrimators.Get(attr); ok {
				a.attrimators.Remove(attr)
				a.dropPending(x)
			}
			a.frame.Delete(attr)
		}
		return nil
	})
}

// Get returns the frame values of the named attributes that have one.
func (a *Animator) Get(attrs ...string) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if v, ok := a.frame.Get(attr); ok {
			out[attr] = v
		}
	}
	return out
}

func (a *Animator) Value(attr string) (any, bool) {
	return a.frame.Get(attr)
}

// Ref returns a func reading the latest value of attr: the frame's, then the
// subject's, then the attribute default.
func (a *Animator) Ref(attr string) (func() any, error) {
	attribute, err := a.subject.Attribute(attr)
	if err != nil {
		return nil, err
	}
	return func() any {
		if v, ok := a.frame.Get(attr); ok {
			return v
		}
		if v, ok := a.subject.Get(attr); ok {
			return v
		}
		return attribute.CloneDefault()
	}, nil
}

func (a *Animator) TimeRemaining() float64 {
	return a.attrimators.TimeRemaining()
}

func (a *Animator) HasAttrimators() bool {
	return a.attrimators.Size() > 0
}

// Tween places an event from start to end on attr.
func (a *Animator) Tween(attr string, start, end any, t attrimator.Timing) error {
	attribute, err := a.subject.Attribute(attr)
	if err != nil {
		return err
	}
	x, err := attribute.Tween(start, end, t)
	if err != nil {
		return err
	}
	a.Place(x)
	return nil
}

// TweenTo places an event from the current value of attr to target.
func (a *Animator) TweenTo(attr string, target any, t attrimator.Timing) error {
	return a.Tween(attr, true, target, t)
}

// TweenManyTo tweens every attribute in targets. Nothing is placed unless every
// attribute can be tweened.
func (a *Animator) TweenManyTo(targets map[string]any, t attrimator.Timing) error {
	return a.TweenMany(nil, targets, t)
}

// TweenMany tweens every attribute in ends from its value in starts, or from its
// current value when starts has none.
func (a *Animator) TweenMany(starts, ends map[string]any, t attrimator.Timing) error {
	attrs := make([]string, 0, len(ends))
	for attr := range ends {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	m := attrimator.NewMap()
	for _, attr := range attrs {
		attribute, err := a.subject.Attribute(attr)
		if err != nil {
			return err
		}
		start, ok := starts[attr]
		if !ok {
			start = true
		}
		x, err := attribute.Tween(start, ends[attr], t)
		if err != nil {
			return err
		}
		m.Put(x)
	}
	a.PlayAttrimators(m, false)
	return nil
}
