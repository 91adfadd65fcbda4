package animator

import (
	"github.com/sgostarter/i/l"
)

// Loop runs the phases of every active animator once per tick. Animators added
// during a tick join on the next one.
type Loop struct {
	logger    l.Wrapper
	animating []*Animator
	adding    []*Animator
	events    *listeners[*Loop]

	now     float64
	ticking bool
	running bool
	live    bool
}

// NewLoop creates an instance of a Loop.
func NewLoop(logger l.Wrapper) *Loop {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	lp := new(Loop)
	lp.logger = logger.WithFields(l.StringField(l.ClsKey, "loopImpl"))
	lp.events = newListeners[*Loop]()
	return lp
}

func (lp *Loop) On(e Event, fn func(*Loop)) (off func()) {
	return lp.events.add(e, fn, false)
}

func (lp *Loop) Once(e Event, fn func(*Loop)) (off func()) {
	return lp.events.add(e, fn, true)
}

// Now is the time of the last tick.
func (lp *Loop) Now() float64 { return lp.now }

// IsRunning reports whether the loop wants more ticks.
func (lp *Loop) IsRunning() bool { return lp.running }

// SetLive keeps the loop running with nothing to animate.
func (lp *Loop) SetLive(live bool) {
	lp.live = live
	if live {
		lp.start()
	}
}

// Animating returns the active animators.
func (lp *Loop) Animating() []*Animator {
	return append(append([]*Animator(nil), lp.animating...), lp.adding...)
}

// Add activates an animator.
func (lp *Loop) Add(a *Animator) {
	if a.active {
		return
	}
	a.active = true
	if lp.ticking {
		lp.adding = append(lp.adding, a)
	} else {
		lp.animating = append(lp.animating, a)
	}
	lp.start()
}

func (lp *Loop) start() {
	if lp.running {
		return
	}
	lp.running = true
	lp.logger.Debug("starting")
	lp.events.trigger(EventStarting, lp)
}

// Tick runs preupdate, update, apply and trim across the active animators in
// that order, then deactivates the finished ones. It returns whether the loop
// should keep ticking.
func (lp *Loop) Tick(now float64) bool {
	lp.now = now
	lp.ticking = true
	lp.events.trigger(EventBegin, lp)

	animating := lp.animating
	for _, a := range animating {
		a.Preupdate(now)
	}
	for _, a := range animating {
		a.Update(now)
	}
	for _, a := range animating {
		a.Apply()
	}
	for _, a := range animating {
		a.Trim(now)
	}

	remaining := make([]*Animator, 0, len(animating)+len(lp.adding))
	for _, a := range animating {
		if a.finished {
			a.deactivate()
		} else {
			remaining = append(remaining, a)
		}
	}
	lp.ticking = false
	lp.animating = append(remaining, lp.adding...)
	lp.adding = nil

	lp.events.trigger(EventEnd, lp)

	if len(lp.animating) == 0 && !lp.live {
		lp.running = false
		lp.logger.Debug("finished")
		lp.events.trigger(EventFinished, lp)
		return false
	}
	return true
}
