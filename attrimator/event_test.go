package attrimator

import (
	"math"
	"testing"

	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 0.000001

func tween(attr string, from, to float64, t Timing) *Event[float64] {
	p := path.NewTween(attr, calc.Number(), calc.Literal(from), calc.Literal(to))
	return NewEvent[float64](attr, p, t)
}

func linear(duration float64) Timing {
	t := DefaultTiming()
	t.Duration = duration
	t.Easing = easing.Linear
	t.HasInitialState = false
	return t
}

func number(t *testing.T, f *Frame, attr string) float64 {
	v, ok := f.Get(attr)
	require.True(t, ok, "no value for %s", attr)
	n, ok := v.(float64)
	require.True(t, ok, "%s is %T", attr, v)
	return n
}

func TestEventUpdate(t *testing.T) {
	f := NewFrame()
	e := tween("x", 0, 100, linear(1000))
	e.Start(0, f)
	assert.False(t, f.Has("x"))

	e.SetTime(0, f)
	assert.InDelta(t, 0.0, number(t, f, "x"), epsilon)
	assert.Equal(t, Animating, e.State())

	e.SetTime(500, f)
	assert.InDelta(t, 50.0, number(t, f, "x"), epsilon)

	e.SetTime(1000, f)
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)
	assert.Equal(t, Finished, e.State())
	assert.True(t, e.IsFinished())
}

func TestEventInitialState(t *testing.T) {
	f := NewFrame()
	timing := linear(1000)
	timing.Delay = 500
	timing.HasInitialState = true
	e := tween("x", 10, 20, timing)

	e.Start(0, f)
	assert.InDelta(t, 10.0, number(t, f, "x"), epsilon)

	f.Flush()
	e.SetTime(100, f)
	assert.Equal(t, Delayed, e.State())
	assert.False(t, f.IsUpdated("x"))
}

func TestEventSleepBoundary(t *testing.T) {
	f := NewFrame()
	timing := linear(1000)
	timing.Sleep = 500
	timing.Repeat = 2
	e := tween("x", 0, 100, timing)
	e.Start(0, f)

	e.SetTime(900, f)
	assert.InDelta(t, 90.0, number(t, f, "x"), epsilon)
	f.Flush()

	// Exactly at the duration the event leaves animation and writes the end once.
	e.SetTime(1000, f)
	assert.Equal(t, Sleeping, e.State())
	assert.True(t, f.IsUpdated("x"))
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)
	f.Flush()

	e.SetTime(1200, f)
	assert.Equal(t, Sleeping, e.State())
	assert.False(t, f.IsUpdated("x"))

	e.SetTime(1500, f)
	assert.Equal(t, Animating, e.State())
	assert.InDelta(t, 0.0, number(t, f, "x"), epsilon)

	e.SetTime(2000, f)
	assert.InDelta(t, 50.0, number(t, f, "x"), epsilon)

	e.SetTime(2500, f)
	assert.Equal(t, Finished, e.State())
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)
}

func TestEventSkipsAnimating(t *testing.T) {
	f := NewFrame()
	timing := linear(1000)
	timing.Sleep = 500
	timing.Repeat = 2
	e := tween("x", 0, 100, timing)
	e.Start(0, f)

	e.SetTime(1200, f)
	assert.Equal(t, Sleeping, e.State())
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)

	e = tween("y", 0, 100, linear(1000))
	e.Start(0, f)
	e.SetTime(5000, f)
	assert.Equal(t, Finished, e.State())
	assert.InDelta(t, 100.0, number(t, f, "y"), epsilon)
}

func TestEventInfiniteRepeat(t *testing.T) {
	timing := linear(1000)
	timing.Repeat = math.Inf(1)
	e := tween("x", 0, 100, timing)

	assert.True(t, e.IsInfinite())
	assert.True(t, math.IsInf(e.TotalTime(), 1))

	f := NewFrame()
	e.Start(0, f)
	e.SetTime(123456, f)
	assert.False(t, e.IsFinished())

	e.StopIn(1000)
	assert.Equal(t, 124456.0, e.TotalTime())
	assert.True(t, e.IsInfinite())

	e.SetTime(124457, f)
	assert.True(t, e.IsFinished())
}

func TestEventZeroDuration(t *testing.T) {
	f := NewFrame()
	e := tween("x", 0, 100, linear(0))
	e.Start(0, f)
	e.SetTime(0, f)
	assert.True(t, e.IsFinished())
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)
}

func TestEventTotalTime(t *testing.T) {
	timing := linear(1000)
	timing.Delay = 200
	timing.Sleep = 100
	timing.Repeat = 3
	e := tween("x", 0, 1, timing)
	assert.Equal(t, 200+3*1000+2*100.0, e.TotalTime())
	assert.False(t, e.IsInfinite())
}

func TestEventScale(t *testing.T) {
	f := NewFrame()
	timing := linear(1000)
	timing.Scale = 2
	e := tween("x", 0, 100, timing).WithScaleBase(calc.Literal(50.0))
	e.Start(0, f)
	e.SetTime(1000, f)
	assert.InDelta(t, 150.0, number(t, f, "x"), epsilon)
}

func TestEventComputedPath(t *testing.T) {
	f := NewFrame()
	f.Init("x", 40.0)
	p := path.NewTween("x", calc.Number(), calc.Current[float64](), calc.Relative(10.0, 1.0))
	e := NewEvent[float64]("x", p, linear(1000))
	require.True(t, e.HasComputed())

	e.Start(0, f)
	e.SetTime(1000, f)
	assert.InDelta(t, 50.0, number(t, f, "x"), epsilon)
}

func TestEventPauseResume(t *testing.T) {
	f := NewFrame()
	e := tween("x", 0, 100, linear(1000))
	e.Start(0, f)

	e.SetTime(200, f)
	assert.InDelta(t, 20.0, number(t, f, "x"), epsilon)

	e.Pause(200)
	assert.True(t, e.IsPaused())
	e.SetTime(500, f)
	assert.InDelta(t, 20.0, number(t, f, "x"), epsilon)

	e.Resume(700)
	e.SetTime(800, f)
	assert.InDelta(t, 30.0, number(t, f, "x"), epsilon)
}

func TestEventFinish(t *testing.T) {
	f := NewFrame()
	e := tween("x", 0, 100, linear(1000))
	e.Start(0, f)
	e.Finish(f)
	assert.True(t, e.IsFinished())
	assert.InDelta(t, 100.0, number(t, f, "x"), epsilon)
}

func TestEventKeyframeGap(t *testing.T) {
	f := NewFrame()
	c := calc.Number()
	p := path.NewKeyframe("x", c, []calc.Value[float64]{calc.Literal(0.0), calc.Literal(10.0)}, []float64{0.5, 1}, nil)
	e := NewEvent[float64]("x", p, linear(1000))
	e.Start(0, f)

	e.SetTime(250, f)
	assert.False(t, f.Has("x"))

	e.SetTime(1000, f)
	assert.InDelta(t, 10.0, number(t, f, "x"), epsilon)
}

func TestQueueCycle(t *testing.T) {
	a := tween("x", 0, 1, linear(100))
	b := tween("x", 1, 2, linear(100))

	require.NoError(t, a.Queue(b))
	assert.Equal(t, Attrimator(b), a.Next())
	assert.ErrorIs(t, b.Queue(a), ErrCycle)
	assert.ErrorIs(t, a.Queue(a), ErrCycle)
	assert.ErrorIs(t, a.Queue(b), ErrCycle)

	assert.Equal(t, 200.0, a.TimeRemaining())

	shared := tween("x", 2, 3, linear(100))
	other := tween("x", 3, 4, linear(100))
	require.NoError(t, b.Queue(shared))
	require.NoError(t, other.Queue(shared))
	assert.ErrorIs(t, a.Queue(other), ErrCycle)
	assert.Nil(t, shared.Next())
	assert.Equal(t, 300.0, a.TimeRemaining())
}

func TestEventOffset(t *testing.T) {
	f := NewFrame()
	timing := linear(1000)
	timing.Offset = 250
	e := tween("x", 0, 100, timing)

	e.Start(1000, f)
	assert.Equal(t, 750.0, e.StartTime())
	assert.Equal(t, 750.0, e.TimeRemaining())
	e.SetTime(1000, f)
	assert.InDelta(t, 25.0, number(t, f, "x"), epsilon)
	e.SetTime(1500, f)
	assert.InDelta(t, 75.0, number(t, f, "x"), epsilon)

	clone := e.Clone()
	clone.Start(0, f)
	assert.Equal(t, 250.0, clone.Elapsed())
}

func TestEventFinishBeforeStart(t *testing.T) {
	f := NewFrame()
	f.Init("x", 75.0)
	p := path.NewTween("x", calc.Number(), calc.Current[float64](), calc.Relative(10.0, 1.0))
	e := NewEvent[float64]("x", p, linear(1000))

	e.Finish(f)
	assert.True(t, e.IsFinished())
	assert.InDelta(t, 85.0, number(t, f, "x"), epsilon)
}

// run feeds the same times to an attrimator chain, starting each successor
// where its predecessor ended, and records the value written at each time.
func run(a Attrimator, times []float64) []any {
	f := NewFrame()
	out := make([]any, 0, len(times))
	a.Start(times[0], f)
	for _, now := range times {
		a.SetTime(now, f)
		if a.IsFinished() && a.Next() != nil {
			end := a.StartTime() + a.TotalTime()
			a = a.Next()
			a.Start(end, f)
			a.SetTime(now, f)
		}
		v, _ := f.Get(a.Attribute())
		out = append(out, v)
	}
	return out
}

func TestCloneEquivalence(t *testing.T) {
	times := []float64{0, 100, 250, 600, 1000, 1100, 1400, 1700, 2500}

	timing := linear(1000)
	timing.Sleep = 200
	first := tween("x", 0, 100, timing)
	second := tween("x", 100, -100, linear(500))
	require.NoError(t, first.Queue(second))

	spring := NewSpring[float64]("x", calc.Number(), LinearForce[float64]{Stiffness: 20, Damping: 2}, SpringOptions[float64]{
		Rest:     calc.Literal(10.0),
		Position: calc.Literal(0.0),
	})
	physics := NewPhysics[float64]("x", calc.Number(), PhysicsOptions[float64]{
		Velocity:     calc.Literal(5.0),
		Acceleration: calc.Literal(-1.0),
	})

	for _, a := range []Attrimator{first, spring, physics} {
		clone := a.Clone()
		assert.NotSame(t, a, clone)
		assert.Equal(t, run(a, times), run(clone, times))
	}

	c := first.Clone()
	require.NotNil(t, c.Next())
	assert.NotSame(t, second, c.Next())
}
