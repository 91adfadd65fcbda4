package path

import (
	"github.com/matt-g-everett/anim8/calc"
)

// PointPath always computes the same value.
type PointPath[T any] struct {
	base[T]
}

// NewPoint creates an instance of a PointPath.
func NewPoint[T any](name string, c calc.Calculator[T], point calc.Value[T]) *PointPath[T] {
	p := new(PointPath[T])
	p.base = newBase(name, c, []calc.Value[T]{point})
	return p
}

func (p *PointPath[T]) Compute(delta float64) (T, bool) {
	return p.values[0], true
}

func (p *PointPath[T]) Resolve(current T) Path[T] {
	return &PointPath[T]{base: p.resolved(current)}
}

func (p *PointPath[T]) Copy() Path[T]                  { return &PointPath[T]{base: p.clone()} }
func (p *PointPath[T]) IsLinear() bool                 { return true }
func (p *PointPath[T]) Length(granularity int) float64 { return 0 }

// Tween interpolates linearly between a start and an end.
type Tween[T any] struct {
	base[T]
}

// NewTween creates an instance of a Tween.
func NewTween[T any](name string, c calc.Calculator[T], start, end calc.Value[T]) *Tween[T] {
	p := new(Tween[T])
	p.base = newBase(name, c, []calc.Value[T]{start, end})
	return p
}

func (p *Tween[T]) Compute(delta float64) (T, bool) {
	return p.calc.Interpolate(p.values[0], p.values[1], delta), true
}

func (p *Tween[T]) Resolve(current T) Path[T] {
	return &Tween[T]{base: p.resolved(current)}
}

func (p *Tween[T]) Copy() Path[T]                  { return &Tween[T]{base: p.clone()} }
func (p *Tween[T]) IsLinear() bool                 { return true }
func (p *Tween[T]) Length(granularity int) float64 { return p.polyline() }

// Quadratic is a quadratic bezier curve.
type Quadratic[T any] struct {
	base[T]
}

// NewQuadratic creates an instance of a Quadratic.
func NewQuadratic[T any](name string, c calc.Calculator[T], p0, p1, p2 calc.Value[T]) *Quadratic[T] {
	p := new(Quadratic[T])
	p.base = newBase(name, c, []calc.Value[T]{p0, p1, p2})
	return p
}

func (p *Quadratic[T]) Compute(delta float64) (T, bool) {
	i := 1 - delta
	out := p.calc.Scale(p.values[0], i*i)
	out = p.calc.Adds(out, p.values[1], 2*i*delta)
	out = p.calc.Adds(out, p.values[2], delta*delta)
	return out, true
}

func (p *Quadratic[T]) Resolve(current T) Path[T] {
	return &Quadratic[T]{base: p.resolved(current)}
}

func (p *Quadratic[T]) Copy() Path[T]  { return &Quadratic[T]{base: p.clone()} }
func (p *Quadratic[T]) IsLinear() bool { return false }

func (p *Quadratic[T]) Length(granularity int) float64 {
	return approximate[T](p, granularity)
}

// Cubic is a cubic bezier curve.
type Cubic[T any] struct {
	base[T]
}

// NewCubic creates an instance of a Cubic.
func NewCubic[T any](name string, c calc.Calculator[T], p0, p1, p2, p3 calc.Value[T]) *Cubic[T] {
	p := new(Cubic[T])
	p.base = newBase(name, c, []calc.Value[T]{p0, p1, p2, p3})
	return p
}

func (p *Cubic[T]) Compute(delta float64) (T, bool) {
	i := 1 - delta
	i2 := i * i
	d2 := delta * delta
	out := p.calc.Scale(p.values[0], i2*i)
	out = p.calc.Adds(out, p.values[1], 3*i2*delta)
	out = p.calc.Adds(out, p.values[2], 3*i*d2)
	out = p.calc.Adds(out, p.values[3], d2*delta)
	return out, true
}

func (p *Cubic[T]) Resolve(current T) Path[T] {
	return &Cubic[T]{base: p.resolved(current)}
}

func (p *Cubic[T]) Copy() Path[T]  { return &Cubic[T]{base: p.clone()} }
func (p *Cubic[T]) IsLinear() bool { return false }

func (p *Cubic[T]) Length(granularity int) float64 {
	return approximate[T](p, granularity)
}
