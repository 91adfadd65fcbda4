package path

import (
	"math"
)

// Compiled samples another path into a fixed number of points and interpolates
// between them. A source with computed points is sampled once it is resolved.
type Compiled[T any] struct {
	base[T]
	source Path[T]
	count  int
}

// NewCompiled creates an instance of a Compiled path with count samples of source.
func NewCompiled[T any](name string, source Path[T], count int) *Compiled[T] {
	if count < 2 {
		count = 2
	}
	p := new(Compiled[T])
	p.source = source
	p.count = count
	p.compile(name)
	return p
}

func (p *Compiled[T]) compile(name string) {
	c := p.source.Calculator()
	if p.source.HasComputed() {
		p.base = newBase(name, c, p.source.Points())
		return
	}
	samples := make([]T, 0, p.count)
	prev := c.Create()
	for i := 0; i < p.count; i++ {
		v, ok := p.source.Compute(float64(i) / float64(p.count-1))
		if !ok {
			v = prev
		}
		samples = append(samples, v)
		prev = v
	}
	p.base = newBase(name, c, literals(samples...))
}

func (p *Compiled[T]) Compute(delta float64) (T, bool) {
	if p.computed {
		return p.source.Compute(delta)
	}
	last := p.last()
	if delta <= 0 {
		return p.values[0], true
	}
	if delta >= 1 {
		return p.values[last], true
	}
	x := delta * float64(last)
	i := int(math.Floor(x))
	return p.calc.Interpolate(p.values[i], p.values[i+1], x-float64(i)), true
}

func (p *Compiled[T]) Resolve(current T) Path[T] {
	if !p.computed {
		return p.Copy()
	}
	return NewCompiled(p.base.name, p.source.Resolve(current), p.count)
}

func (p *Compiled[T]) Copy() Path[T] {
	return &Compiled[T]{base: p.clone(), source: p.source, count: p.count}
}

func (p *Compiled[T]) IsLinear() bool { return !p.computed }

func (p *Compiled[T]) Length(granularity int) float64 {
	if p.computed {
		return p.source.Length(granularity)
	}
	return p.polyline()
}
