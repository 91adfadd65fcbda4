package animator

import (
	"errors"
	"testing"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 0.000001

var errUnknown = errors.New("unknown attribute")

type numberAttribute struct {
	name string
}

func (n numberAttribute) Name() string      { return n.name }
func (n numberAttribute) CloneDefault() any { return 0.0 }

func (n numberAttribute) Parse(raw any) (any, bool) {
	v, ok := calc.Number().Parse(raw, 0)
	if !ok || v.IsComputed() {
		return nil, false
	}
	return v.Value, true
}

func (n numberAttribute) Tween(start, end any, t attrimator.Timing) (attrimator.Attrimator, error) {
	c := calc.Number()
	s, ok := c.Parse(start, 0)
	if !ok {
		return nil, errors.New("bad start")
	}
	e, ok := c.Parse(end, 0)
	if !ok {
		return nil, errors.New("bad end")
	}
	return attrimator.NewEvent[float64](n.name, path.NewTween(n.name, c, s, e), t), nil
}

type bag struct {
	values  map[string]any
	applied int
	onApply func(values map[string]any)
}

func newBag(values map[string]any) *bag {
	if values == nil {
		values = make(map[string]any)
	}
	return &bag{values: values}
}

func (b *bag) Attribute(name string) (Attribute, error) {
	switch name {
	case "x", "y", "z":
		return numberAttribute{name: name}, nil
	}
	return nil, errUnknown
}

func (b *bag) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b *bag) Apply(values map[string]any) {
	b.applied++
	for k, v := range values {
		b.values[k] = v
	}
	if b.onApply != nil {
		b.onApply(values)
	}
}

func (b *bag) number(t *testing.T, name string) float64 {
	t.Helper()
	v, ok := b.values[name]
	require.True(t, ok, "no value for %s", name)
	return v.(float64)
}

type animation func() *attrimator.Map

func (a animation) Attrimators() (*attrimator.Map, error) { return a(), nil }

func linear(duration float64) attrimator.Timing {
	return attrimator.Timing{Duration: duration, Repeat: 1, Scale: 1, Easing: easing.Linear}
}

func tween(attr string, from, to, duration float64) attrimator.Attrimator {
	c := calc.Number()
	return attrimator.NewEvent[float64](attr, path.NewTween(attr, c, calc.Literal(from), calc.Literal(to)), linear(duration))
}

func mapOf(xs ...attrimator.Attrimator) *attrimator.Map {
	m := attrimator.NewMap()
	for _, x := range xs {
		m.Put(x)
	}
	return m
}

func TestTweenTo(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(map[string]any{"x": 10.0})
	a := NewAnimator(s, loop, nil)

	finished := 0
	a.On(EventFinished, func(*Animator) { finished++ })

	require.NoError(t, a.TweenTo("x", 20, linear(1000)))
	assert.True(t, a.IsActive())
	assert.True(t, loop.IsRunning())

	assert.True(t, loop.Tick(0))
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)

	loop.Tick(500)
	assert.InDelta(t, 15.0, s.number(t, "x"), epsilon)

	assert.False(t, loop.Tick(1000))
	assert.InDelta(t, 20.0, s.number(t, "x"), epsilon)
	assert.Equal(t, 1, finished)
	assert.False(t, a.HasAttrimators())
	assert.False(t, a.IsActive())
	assert.False(t, loop.IsRunning())

	assert.ErrorIs(t, a.TweenTo("nope", 1, linear(100)), errUnknown)
}

func TestQueueStartsWhereFirstEnds(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	a.PlayAttrimators(mapOf(tween("x", 0, 20, 1000)), false)
	loop.Tick(0)
	loop.Tick(400)
	assert.InDelta(t, 600.0, a.TimeRemaining(), epsilon)

	require.NoError(t, a.Queue(animation(func() *attrimator.Map {
		return mapOf(tween("x", 20, 0, 500))
	})))
	assert.InDelta(t, 1100.0, a.TimeRemaining(), epsilon)

	// The tick after the first ends lands mid way into the second.
	loop.Tick(1100)
	assert.InDelta(t, 16.0, s.number(t, "x"), epsilon)
	assert.InDelta(t, 1000.0, a.Attrimators().At(0).StartTime(), epsilon)
	loop.Tick(1200)
	assert.InDelta(t, 12.0, s.number(t, "x"), epsilon)
	assert.False(t, loop.Tick(1500))
	assert.InDelta(t, 0.0, s.number(t, "x"), epsilon)
}

func TestSuccessorRunsInSameTick(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	first := tween("x", 0, 10, 500)
	require.NoError(t, first.Queue(tween("x", 10, 20, 500)))
	a.Place(first)

	loop.Tick(0)
	loop.Tick(750)
	assert.InDelta(t, 15.0, s.number(t, "x"), epsilon)
	assert.False(t, loop.Tick(1000))
	assert.InDelta(t, 20.0, s.number(t, "x"), epsilon)
}

func TestEndResolvesRelativeTail(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	c := calc.Number()
	first := tween("x", 50, 100, 1000)
	last := attrimator.NewEvent[float64]("x", path.NewTween("x", c, calc.Current[float64](), calc.Relative(10.0, 1.0)), linear(1000))
	require.NoError(t, first.Queue(last))
	a.Place(first)

	loop.Tick(0)
	loop.Tick(500)
	require.InDelta(t, 75.0, s.number(t, "x"), epsilon)

	a.End("x")
	loop.Tick(600)
	assert.InDelta(t, 85.0, s.number(t, "x"), epsilon)
}

func TestQueueNewAttributeWaits(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	a.PlayAttrimators(mapOf(tween("x", 0, 10, 1000)), false)
	loop.Tick(0)
	require.NoError(t, a.QueueAttrimators(mapOf(tween("y", 0, 10, 1000))))

	loop.Tick(500)
	_, ok := s.values["y"]
	assert.False(t, ok)

	loop.Tick(1500)
	assert.InDelta(t, 5.0, s.number(t, "y"), epsilon)
}

func TestTransition(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(map[string]any{"x": 0.0})
	a := NewAnimator(s, loop, nil)

	a.PlayAttrimators(mapOf(tween("x", 0, 100, 1000)), false)
	loop.Tick(0)
	loop.Tick(500)
	require.InDelta(t, 50.0, s.number(t, "x"), epsilon)

	a.TransitionAttrimators(attrimator.DefaultTransition(), mapOf(tween("x", 200, 300, 1000), tween("y", 0, 10, 1000)), false)

	loop.Tick(600)
	assert.InDelta(t, 50.0, s.number(t, "x"), epsilon)
	_, ok := s.values["y"]
	assert.False(t, ok)

	loop.Tick(1100)
	assert.InDelta(t, 200.0, s.number(t, "x"), epsilon)

	loop.Tick(1350)
	assert.InDelta(t, 225.0, s.number(t, "x"), epsilon)
	assert.InDelta(t, 2.5, s.number(t, "y"), epsilon)
}

func TestTransitionWithoutOverlap(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	require.NoError(t, a.Transition(attrimator.DefaultTransition(), animation(func() *attrimator.Map {
		return mapOf(tween("y", 0, 10, 1000))
	}), false))
	loop.Tick(0)
	loop.Tick(500)
	assert.InDelta(t, 5.0, s.number(t, "y"), epsilon)
}

func TestPlayAll(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	a.PlayAttrimators(mapOf(tween("x", 0, 10, 1000), tween("y", 0, 10, 1000)), false)
	loop.Tick(0)
	loop.Tick(100)

	require.NoError(t, a.Play(animation(func() *attrimator.Map {
		return mapOf(tween("x", 10, 0, 1000))
	}), true))
	assert.InDelta(t, 10.0, a.Get("y")["y"].(float64), epsilon)

	loop.Tick(200)
	assert.InDelta(t, 10.0, s.number(t, "y"), epsilon)
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)
	assert.Equal(t, []string{"x"}, a.Attrimators().Keys())
}

func TestPauseResume(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	a.PlayAttrimators(mapOf(tween("x", 0, 100, 1000)), false)
	loop.Tick(0)
	loop.Tick(200)
	a.Pause("x")
	loop.Tick(500)
	assert.InDelta(t, 20.0, s.number(t, "x"), epsilon)

	a.Resume()
	loop.Tick(600)
	assert.InDelta(t, 30.0, s.number(t, "x"), epsilon)
}

func TestStopEndFinish(t *testing.T) {
	s := newBag(nil)
	a := NewAnimator(s, nil, nil)
	tick := func(now float64) {
		a.Preupdate(now)
		a.Update(now)
		a.Apply()
		a.Trim(now)
	}

	first := tween("x", 0, 10, 1000)
	second := tween("x", 10, 20, 1000)
	require.NoError(t, first.Queue(second))
	a.Place(first)
	tick(0)

	// Finish lets the queued tween follow from where the first was cut off.
	a.Finish("x")
	assert.True(t, first.IsFinished())
	tick(100)
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)
	tick(600)
	assert.InDelta(t, 15.0, s.number(t, "x"), epsilon)

	third := tween("x", 0, 1, 1000)
	fourth := tween("x", 1, 2, 1000)
	require.NoError(t, third.Queue(fourth))
	a.Place(third)
	tick(700)

	// End skips straight to the last value queued.
	a.End("x")
	assert.True(t, fourth.IsFinished())
	assert.False(t, third.IsFinished())
	tick(800)
	assert.InDelta(t, 2.0, s.number(t, "x"), epsilon)
	assert.False(t, a.HasAttrimators())
	assert.True(t, a.IsFinished())

	a.Place(tween("y", 0, 10, 1000))
	tick(900)
	tick(1400)
	a.Stop()
	assert.False(t, a.HasAttrimators())
	tick(1500)
	assert.InDelta(t, 5.0, s.number(t, "y"), epsilon)
}

func TestSetUnsetGetRef(t *testing.T) {
	s := newBag(map[string]any{"z": 3.0})
	a := NewAnimator(s, nil, nil)

	a.Set(map[string]any{"x": 5.0})
	assert.Equal(t, 5.0, s.values["x"])
	assert.Equal(t, 1, s.applied)

	got := a.Get("x", "y")
	assert.Equal(t, map[string]any{"x": 5.0}, got)

	ref, err := a.Ref("x")
	require.NoError(t, err)
	assert.Equal(t, 5.0, ref())

	a.Unset("x")
	_, ok := a.Value("x")
	assert.False(t, ok)
	assert.Equal(t, 5.0, ref())

	delete(s.values, "x")
	assert.Equal(t, 0.0, ref())

	zref, err := a.Ref("z")
	require.NoError(t, err)
	assert.Equal(t, 3.0, zref())

	_, err = a.Ref("nope")
	assert.ErrorIs(t, err, errUnknown)
}

func TestTweenMany(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(map[string]any{"x": 0.0, "y": 100.0})
	a := NewAnimator(s, loop, nil)

	require.NoError(t, a.TweenManyTo(map[string]any{"x": 10, "y": "+10"}, linear(1000)))
	loop.Tick(0)
	loop.Tick(1000)
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)
	assert.InDelta(t, 110.0, s.number(t, "y"), epsilon)

	err := a.TweenManyTo(map[string]any{"x": 1, "nope": 2}, linear(1000))
	assert.ErrorIs(t, err, errUnknown)
	assert.False(t, a.HasAttrimators())

	require.NoError(t, a.TweenMany(map[string]any{"x": 50}, map[string]any{"x": 60, "z": 1}, linear(100)))
	loop.Tick(2000)
	loop.Tick(2100)
	assert.InDelta(t, 60.0, s.number(t, "x"), epsilon)
	assert.InDelta(t, 1.0, s.number(t, "z"), epsilon)
}

func TestFollow(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	c := calc.Number()
	p := path.NewDelta("x", c, []calc.Value[float64]{calc.Literal(0.0), calc.Literal(10.0), calc.Literal(0.0)}, nil)
	e := Follow[float64](a, "x", p, linear(1000))
	require.NotNil(t, e)

	loop.Tick(0)
	loop.Tick(500)
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)
}

func TestSpring(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(map[string]any{"x": 0.0})
	a := NewAnimator(s, loop, nil)

	o := attrimator.DefaultSpringOptions[float64]()
	o.Rest = calc.Literal(1.0)
	o.FinishOnRest = true
	a.Spring(attrimator.NewSpring[float64]("x", calc.Number(), attrimator.LinearForce[float64]{Stiffness: 100, Damping: 20}, o))

	now := 0.0
	for loop.Tick(now) && now < 10000 {
		now += 16
	}
	assert.Less(t, now, 10000.0)
	assert.InDelta(t, 1.0, s.number(t, "x"), 0.001)
}

func TestMutationDuringApplyIsDeferred(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	stopped := false
	s.onApply = func(values map[string]any) {
		if v, ok := values["x"]; ok && v.(float64) >= 5 && !stopped {
			stopped = true
			a.Stop("x")
			assert.True(t, a.HasAttrimators())
		}
	}

	a.PlayAttrimators(mapOf(tween("x", 0, 10, 1000)), false)
	loop.Tick(0)
	loop.Tick(500)
	assert.True(t, stopped)
	assert.False(t, a.HasAttrimators())
	assert.False(t, loop.Tick(600))
	assert.InDelta(t, 5.0, s.number(t, "x"), epsilon)
}

func TestFinishedListenerCanPlay(t *testing.T) {
	loop := NewLoop(nil)
	s := newBag(nil)
	a := NewAnimator(s, loop, nil)

	a.Once(EventFinished, func(a *Animator) {
		a.PlayAttrimators(mapOf(tween("x", 10, 0, 100)), false)
	})
	a.PlayAttrimators(mapOf(tween("x", 0, 10, 100)), false)

	loop.Tick(0)
	assert.True(t, loop.Tick(100))
	assert.True(t, a.IsActive())
	loop.Tick(150)
	assert.InDelta(t, 10.0, s.number(t, "x"), epsilon)
	loop.Tick(200)
	assert.InDelta(t, 5.0, s.number(t, "x"), epsilon)
	assert.False(t, loop.Tick(250))
}
