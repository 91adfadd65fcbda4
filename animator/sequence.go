package animator

import (
	"math"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
)

// Follow places an event moving attr along p.
func Follow[T any](a *Animator, attr string, p path.Path[T], t attrimator.Timing) *attrimator.Event[T] {
	e := attrimator.NewEvent[T](attr, p, t)
	a.Place(e)
	return e
}

// Sequence plays one animation on several animators, each starting a little
// after the one before it.
type Sequence struct {
	animators []*Animator
	delay     float64
	easing    easing.Func
}

// NewSequence creates an instance of a Sequence. The last animator starts delay
// milliseconds after the first times ease(1).
func NewSequence(delay float64, ease easing.Func, animators ...*Animator) *Sequence {
	if ease == nil {
		ease = easing.Linear
	}
	s := new(Sequence)
	s.animators = append([]*Animator(nil), animators...)
	s.delay = delay
	s.easing = ease
	return s
}

func (s *Sequence) Animators() []*Animator {
	return append([]*Animator(nil), s.animators...)
}

// MaxDelay is the offset of the last animator before easing.
func (s *Sequence) MaxDelay() float64 {
	return s.delay * float64(len(s.animators)-1)
}

// Reverse flips the order the animators start in.
func (s *Sequence) Reverse() *Sequence {
	for i, j := 0, len(s.animators)-1; i < j; i, j = i+1, j-1 {
		s.animators[i], s.animators[j] = s.animators[j], s.animators[i]
	}
	return s
}

func (s *Sequence) offset(i int) float64 {
	if len(s.animators) < 2 {
		return 0
	}
	delta := float64(i) / float64(len(s.animators)-1)
	return s.easing(delta) * s.MaxDelay()
}

func (s *Sequence) attrimators(anim Animation, i int, extra float64) (*attrimator.Map, error) {
	m, err := anim.Attrimators()
	if err != nil {
		return nil, err
	}
	d := s.offset(i) + extra
	m.Each(func(x attrimator.Attrimator) {
		x.AddDelay(d)
	})
	return m, nil
}

func (s *Sequence) Play(anim Animation, all bool) error {
	for i, a := range s.animators {
		m, err := s.attrimators(anim, i, 0)
		if err != nil {
			return err
		}
		a.PlayAttrimators(m, all)
	}
	return nil
}

// Queue lines the animators up so the sequence starts once the busiest of them
// is done.
func (s *Sequence) Queue(anim Animation) error {
	remaining := make([]float64, len(s.animators))
	maxRemaining := 0.0
	for i, a := range s.animators {
		remaining[i] = a.TimeRemaining()
		maxRemaining = math.Max(maxRemaining, remaining[i])
	}

	for i, a := range s.animators {
		m, err := s.attrimators(anim, i, maxRemaining-remaining[i])
		if err != nil {
			return err
		}
		if err = a.QueueAttrimators(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequence) Transition(t attrimator.Transition, anim Animation, all bool) error {
	for i, a := range s.animators {
		m, err := s.attrimators(anim, i, 0)
		if err != nil {
			return err
		}
		a.TransitionAttrimators(t, m, all)
	}
	return nil
}

// TimeRemaining is the longest time remaining of the animators.
func (s *Sequence) TimeRemaining() float64 {
	r := 0.0
	for _, a := range s.animators {
		r = math.Max(r, a.TimeRemaining())
	}
	return r
}
