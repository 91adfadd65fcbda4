package path

import (
	"math"

	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
)

// EvenDeltas spreads n breakpoints evenly over [0, 1].
func EvenDeltas(n int) []float64 {
	deltas := make([]float64, n)
	if n == 1 {
		return deltas
	}
	for i := range deltas {
		deltas[i] = float64(i) / float64(n-1)
	}
	return deltas
}

// segment finds the pair of breakpoints around delta and the progress between them.
func segment(deltas []float64, delta float64) (int, float64) {
	end := len(deltas) - 2
	if end < 0 {
		return 0, 1
	}
	i := 0
	for i < end && deltas[i+1] < delta {
		i++
	}
	d0 := deltas[i]
	d1 := deltas[i+1]
	if d1-d0 <= 0 {
		return i, 1
	}
	return i, (delta - d0) / (d1 - d0)
}

// Delta interpolates linearly between points placed at breakpoints.
type Delta[T any] struct {
	base[T]
	deltas []float64
}

// NewDelta creates an instance of a Delta path. Nil deltas spread the points evenly.
func NewDelta[T any](name string, c calc.Calculator[T], points []calc.Value[T], deltas []float64) *Delta[T] {
	p := new(Delta[T])
	p.base = newBase(name, c, points)
	if deltas == nil {
		deltas = EvenDeltas(len(points))
	}
	p.deltas = append([]float64(nil), deltas...)
	return p
}

func (p *Delta[T]) Compute(delta float64) (T, bool) {
	if len(p.values) == 1 {
		return p.values[0], true
	}
	i, pd := segment(p.deltas, delta)
	return p.calc.Interpolate(p.values[i], p.values[i+1], pd), true
}

func (p *Delta[T]) Resolve(current T) Path[T] {
	return &Delta[T]{base: p.resolved(current), deltas: p.deltas}
}

func (p *Delta[T]) Copy() Path[T] {
	return &Delta[T]{base: p.clone(), deltas: append([]float64(nil), p.deltas...)}
}

func (p *Delta[T]) IsLinear() bool                 { return true }
func (p *Delta[T]) Length(granularity int) float64 { return p.polyline() }

// Keyframe is like Delta with an easing per segment. Before the first breakpoint it
// has no value.
type Keyframe[T any] struct {
	base[T]
	deltas  []float64
	easings []easing.Func
}

// NewKeyframe creates an instance of a Keyframe path. Missing easings are linear.
func NewKeyframe[T any](name string, c calc.Calculator[T], points []calc.Value[T], deltas []float64, easings []easing.Func) *Keyframe[T] {
	p := new(Keyframe[T])
	p.base = newBase(name, c, points)
	if deltas == nil {
		deltas = EvenDeltas(len(points))
	}
	p.deltas = append([]float64(nil), deltas...)
	p.easings = make([]easing.Func, len(points))
	for i := range p.easings {
		if i < len(easings) && easings[i] != nil {
			p.easings[i] = easings[i]
		} else {
			p.easings[i] = easing.Linear
		}
	}
	return p
}

func (p *Keyframe[T]) Compute(delta float64) (T, bool) {
	last := p.last()
	if delta < p.deltas[0] {
		var none T
		return none, false
	}
	if delta > p.deltas[last] || last == 0 {
		return p.values[last], true
	}
	i, pd := segment(p.deltas, delta)
	return p.calc.Interpolate(p.values[i], p.values[i+1], p.easings[i](pd)), true
}

func (p *Keyframe[T]) Resolve(current T) Path[T] {
	return &Keyframe[T]{base: p.resolved(current), deltas: p.deltas, easings: p.easings}
}

func (p *Keyframe[T]) Copy() Path[T] {
	return &Keyframe[T]{
		base:    p.clone(),
		deltas:  append([]float64(nil), p.deltas...),
		easings: append([]easing.Func(nil), p.easings...),
	}
}

func (p *Keyframe[T]) IsLinear() bool { return false }

func (p *Keyframe[T]) Length(granularity int) float64 {
	return approximate[T](p, granularity)
}

// Jump moves between points without interpolating.
type Jump[T any] struct {
	base[T]
}

// NewJump creates an instance of a Jump path.
func NewJump[T any](name string, c calc.Calculator[T], points []calc.Value[T]) *Jump[T] {
	p := new(Jump[T])
	p.base = newBase(name, c, points)
	return p
}

func (p *Jump[T]) Compute(delta float64) (T, bool) {
	i := int(math.Floor(delta * float64(len(p.values))))
	if i < 0 {
		i = 0
	}
	if i > p.last() {
		i = p.last()
	}
	return p.values[i], true
}

func (p *Jump[T]) Resolve(current T) Path[T] {
	return &Jump[T]{base: p.resolved(current)}
}

func (p *Jump[T]) Copy() Path[T]                  { return &Jump[T]{base: p.clone()} }
func (p *Jump[T]) IsLinear() bool                 { return true }
func (p *Jump[T]) Length(granularity int) float64 { return p.polyline() }
