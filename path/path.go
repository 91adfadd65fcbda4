package path

import (
	"github.com/matt-g-everett/anim8/calc"
)

// A Path produces a value for a normalised progress using a set of control points.
type Path[T any] interface {
	Name() string
	Calculator() calc.Calculator[T]

	// Compute returns the value at delta, false means the attribute should not be
	// updated.
	Compute(delta float64) (T, bool)

	Points() []calc.Value[T]
	// Point returns the resolved control point i.
	Point(i int) T

	// HasComputed returns true while any control point depends on the current value.
	HasComputed() bool
	// Resolve returns a copy with every computed point resolved against current.
	// The receiver is never modified.
	Resolve(current T) Path[T]

	IsLinear() bool
	// Length is the exact polyline length for linear paths and an approximation
	// over granularity steps for curves.
	Length(granularity int) float64

	Copy() Path[T]
}

// base holds what every path shares.
type base[T any] struct {
	name     string
	calc     calc.Calculator[T]
	points   []calc.Value[T]
	values   []T
	computed bool
}

func newBase[T any](name string, c calc.Calculator[T], points []calc.Value[T]) base[T] {
	b := base[T]{name: name, calc: c}
	b.points = append([]calc.Value[T](nil), points...)
	b.values = make([]T, len(points))
	for i, p := range points {
		if p.IsComputed() {
			b.computed = true
			b.values[i] = c.Create()
		} else {
			b.values[i] = p.Value
		}
	}
	return b
}

func (b *base[T]) Name() string                   { return b.name }
func (b *base[T]) Calculator() calc.Calculator[T] { return b.calc }
func (b *base[T]) HasComputed() bool              { return b.computed }

func (b *base[T]) Points() []calc.Value[T] {
	return append([]calc.Value[T](nil), b.points...)
}

func (b *base[T]) Point(i int) T {
	return b.values[i]
}

func (b *base[T]) last() int {
	return len(b.values) - 1
}

// resolved returns a copy of the base with computed points replaced by literals.
func (b *base[T]) resolved(current T) base[T] {
	points := make([]calc.Value[T], len(b.points))
	for i, p := range b.points {
		points[i] = calc.Literal(p.Resolve(b.calc, current))
	}
	return newBase(b.name, b.calc, points)
}

func (b *base[T]) clone() base[T] {
	return newBase(b.name, b.calc, b.points)
}

// polyline sums the distances between consecutive control points.
func (b *base[T]) polyline() float64 {
	distance := 0.0
	for i := 1; i < len(b.values); i++ {
		distance += b.calc.Distance(b.values[i-1], b.values[i])
	}
	return distance
}

// approximate sums the distances between granularity+1 samples of p.
func approximate[T any](p Path[T], granularity int) float64 {
	if granularity < 1 {
		granularity = 1
	}
	c := p.Calculator()
	distance := 0.0
	prev, _ := p.Compute(0)
	for i := 1; i <= granularity; i++ {
		next, ok := p.Compute(float64(i) / float64(granularity))
		if !ok {
			continue
		}
		distance += c.Distance(prev, next)
		prev = next
	}
	return distance
}

func literals[T any](points ...T) []calc.Value[T] {
	values := make([]calc.Value[T], len(points))
	for i := range points {
		values[i] = calc.Literal(points[i])
	}
	return values
}
