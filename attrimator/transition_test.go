package attrimator

import (
	"math"
	"testing"

	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeContinuity(t *testing.T) {
	f := NewFrame()
	running := tween("x", 0, 100, linear(1000))
	running.Start(0, f)
	running.SetTime(500, f)
	v0 := number(t, f, "x")
	require.InDelta(t, 50.0, v0, epsilon)

	incoming := tween("x", 200, 300, linear(1000))
	b := incoming.Bridge(running, f, DefaultTransition())
	bridge, ok := b.(*Event[float64])
	require.True(t, ok)
	assert.Same(t, incoming, b.Next())
	assert.Equal(t, 0.0, b.Delay())
	assert.Equal(t, DefaultTransitionTime, b.TotalTime())

	start, ok := bridge.Path().Compute(0)
	require.True(t, ok)
	assert.InDelta(t, v0, start, epsilon)

	// p1 aims at where the running tween would be a tenth further on.
	mid, ok := bridge.Path().Compute(0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.25*50+0.5*60+0.25*200, mid, epsilon)

	b.Start(500, f)
	assert.InDelta(t, v0, number(t, f, "x"), epsilon)
	b.SetTime(1000, f)
	assert.True(t, b.IsFinished())
	assert.InDelta(t, 200.0, number(t, f, "x"), epsilon)

	first, _ := incoming.Path().Compute(0)
	incoming.Start(1000, f)
	incoming.SetTime(1000, f)
	assert.InDelta(t, first, number(t, f, "x"), epsilon)
}

func TestBridgeCubicEndsOnIncomingStart(t *testing.T) {
	f := NewFrame()
	f.Init("x", 10.0)
	incoming := tween("x", 50, 150, linear(1000))

	tr := DefaultTransition()
	tr.IntroDelta = DefaultIntroDelta
	tr.Granularity = 16
	b := incoming.Bridge(nil, f, tr)
	p := b.(*Event[float64]).Path()
	_, compiled := p.(*path.Compiled[float64])
	assert.True(t, compiled)

	start, _ := p.Compute(0)
	end, _ := p.Compute(1)
	assert.InDelta(t, 10.0, start, epsilon)
	assert.InDelta(t, 50.0, end, epsilon)
}

func TestBridgeComputedIncoming(t *testing.T) {
	f := NewFrame()
	f.Init("p", calc.Vec2{X: 1, Y: 1})
	c := calc.Point2()
	incoming := NewEvent[calc.Vec2]("p", path.NewTween("p", c, calc.Relative(calc.Vec2{X: 5}, calc.Vec2{X: 1, Y: 1}), calc.Literal(calc.Vec2{})), linear(100))

	b := incoming.Bridge(nil, f, DefaultTransition())
	end, ok := b.(*Event[calc.Vec2]).Path().Compute(1)
	require.True(t, ok)
	assert.Equal(t, calc.Vec2{X: 6, Y: 1}, end)
}

func TestBridgeSpring(t *testing.T) {
	f := NewFrame()
	f.Init("x", 3.0)
	s := NewSpring[float64]("x", calc.Number(), LinearForce[float64]{Stiffness: 1}, DefaultSpringOptions[float64]())

	b := s.Bridge(nil, f, DefaultTransition())
	assert.Same(t, s, b.Next())
	assert.True(t, math.IsInf(b.TimeRemaining(), 1))
	assert.True(t, b.IsInfinite())

	end, _ := b.(*Event[float64]).Path().Compute(1)
	assert.InDelta(t, 3.0, end, epsilon)
}
