package calc

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// layout describes a value shape as a fixed list of float64 components.
type layout[T any] struct {
	name   string
	fields []string
	get    func(v T, i int) float64
	set    func(v T, i int, x float64) T
	// broadcast turns a bare number into a value.
	broadcast func(x float64) T
	// relative turns a signed bare number into a relative amount, defaults to broadcast.
	relative func(x float64) T
	// text parses extra string forms such as colours.
	text func(s string) (T, bool)
	// typed parses extra Go types such as colorful.Color.
	typed func(raw any) (T, bool)
}

// vector is a Calculator over any layout.
type vector[T any] struct {
	l        layout[T]
	zero     T
	one      T
	infinity T
}

func newVector[T any](l layout[T]) *vector[T] {
	v := new(vector[T])
	v.l = l
	if v.l.relative == nil {
		v.l.relative = v.l.broadcast
	}
	v.zero = v.fill(0)
	v.one = v.fill(1)
	v.infinity = v.fill(math.Inf(1))
	return v
}

func (v *vector[T]) fill(x float64) T {
	var out T
	for i := range v.l.fields {
		out = v.l.set(out, i, x)
	}
	return out
}

func (v *vector[T]) each(a T, fn func(x float64) float64) T {
	out := a
	for i := range v.l.fields {
		out = v.l.set(out, i, fn(v.l.get(a, i)))
	}
	return out
}

func (v *vector[T]) zip(a, b T, fn func(x, y float64) float64) T {
	out := a
	for i := range v.l.fields {
		out = v.l.set(out, i, fn(v.l.get(a, i), v.l.get(b, i)))
	}
	return out
}

func (v *vector[T]) all(a T, fn func(x float64) bool) bool {
	for i := range v.l.fields {
		if !fn(v.l.get(a, i)) {
			return false
		}
	}
	return true
}

func (v *vector[T]) Name() string { return v.l.name }

func (v *vector[T]) Create() T {
	var out T
	return out
}

func (v *vector[T]) Zero() T         { return v.zero }
func (v *vector[T]) One() T          { return v.one }
func (v *vector[T]) Infinity() T     { return v.infinity }
func (v *vector[T]) Clone(a T) T     { return a }
func (v *vector[T]) Dimensions() int { return len(v.l.fields) }

func (v *vector[T]) Component(a T, i int) float64 {
	return v.l.get(a, i)
}

func (v *vector[T]) WithComponent(a T, i int, x float64) T {
	return v.l.set(a, i, x)
}

func (v *vector[T]) Scale(a T, s float64) T {
	return v.each(a, func(x float64) float64 { return x * s })
}

func (v *vector[T]) Add(a, b T) T {
	return v.zip(a, b, func(x, y float64) float64 { return x + y })
}

func (v *vector[T]) Adds(a, b T, s float64) T {
	return v.zip(a, b, func(x, y float64) float64 { return x + y*s })
}

func (v *vector[T]) Sub(a, b T) T {
	return v.zip(a, b, func(x, y float64) float64 { return x - y })
}

func (v *vector[T]) Mul(a, b T) T {
	return v.zip(a, b, func(x, y float64) float64 { return x * y })
}

func (v *vector[T]) Interpolate(a, b T, delta float64) T {
	return v.zip(a, b, func(x, y float64) float64 { return x + (y-x)*delta })
}

func (v *vector[T]) DistanceSq(a, b T) float64 {
	sum := 0.0
	for i := range v.l.fields {
		d := v.l.get(a, i) - v.l.get(b, i)
		sum += d * d
	}
	return sum
}

func (v *vector[T]) Distance(a, b T) float64 {
	return math.Sqrt(v.DistanceSq(a, b))
}

func (v *vector[T]) Length(a T) float64 {
	return math.Sqrt(v.DistanceSq(a, v.zero))
}

func (v *vector[T]) IsNaN(a T) bool {
	return !v.all(a, func(x float64) bool { return !math.IsNaN(x) })
}

func (v *vector[T]) IsZero(a T, epsilon float64) bool {
	return v.all(a, func(x float64) bool { return math.Abs(x) <= epsilon })
}

func (v *vector[T]) IsEqual(a, b T, epsilon float64) bool {
	return v.IsZero(v.Sub(a, b), epsilon)
}

func (v *vector[T]) Min(a, b T) T {
	return v.zip(a, b, math.Min)
}

func (v *vector[T]) Max(a, b T) T {
	return v.zip(a, b, math.Max)
}

func (v *vector[T]) Clamp(a T, min, max float64) T {
	length := v.Length(a)
	if length == 0 || math.IsNaN(length) {
		return a
	}
	if length < min {
		return v.Scale(a, min/length)
	}
	if length > max {
		return v.Scale(a, max/length)
	}
	return a
}

func (v *vector[T]) Parse(raw any, def T) (Value[T], bool) {
	switch x := raw.(type) {
	case nil:
		return Literal(def), true
	case Value[T]:
		return x, true
	case T:
		return Literal(x), true
	case bool:
		if x {
			return Current[T](), true
		}
		return Value[T]{}, false
	case string:
		return v.parseString(x, def)
	case map[string]any:
		return v.parseMap(x, def)
	case map[any]any:
		return v.parseMap(cast.ToStringMap(x), def)
	case []any:
		return v.parseList(x, def)
	case []float64:
		items := make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
		return v.parseList(items, def)
	}

	if v.l.typed != nil {
		if t, ok := v.l.typed(raw); ok {
			return Literal(t), true
		}
	}

	n, err := cast.ToFloat64E(raw)
	if err != nil {
		return Value[T]{}, false
	}
	return Literal(v.l.broadcast(n)), true
}

func (v *vector[T]) parseString(s string, def T) (Value[T], bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value[T]{}, false
	}
	if s == "true" {
		return Current[T](), true
	}
	if v.l.text != nil {
		if t, ok := v.l.text(s); ok {
			return Literal(t), true
		}
	}
	if amount, relative, ok := parseComponent(s); ok {
		if relative {
			return Relative(v.l.relative(amount), v.one), true
		}
		return Literal(v.l.broadcast(amount)), true
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(parts) < 2 {
		return Value[T]{}, false
	}
	items := make([]any, len(parts))
	for i := range parts {
		items[i] = parts[i]
	}
	return v.parseList(items, def)
}

func (v *vector[T]) parseMap(m map[string]any, def T) (Value[T], bool) {
	out := Value[T]{Kind: KindLiteral, Value: def, Amount: def}
	found := false
	for i, field := range v.l.fields {
		raw, ok := m[field]
		if !ok {
			continue
		}
		found = true
		if !v.parseInto(&out, i, raw) {
			return Value[T]{}, false
		}
	}
	return out, found
}

func (v *vector[T]) parseList(items []any, def T) (Value[T], bool) {
	if len(items) == 0 || len(items) > len(v.l.fields) {
		return Value[T]{}, false
	}
	out := Value[T]{Kind: KindLiteral, Value: def, Amount: def}
	for i, raw := range items {
		if !v.parseInto(&out, i, raw) {
			return Value[T]{}, false
		}
	}
	return out, true
}

// parseInto stores a single component into out, switching out to a relative value
// the first time a signed string component is seen.
func (v *vector[T]) parseInto(out *Value[T], i int, raw any) bool {
	var amount float64
	relative := false
	if s, ok := raw.(string); ok {
		a, r, ok := parseComponent(strings.TrimSpace(s))
		if !ok {
			return false
		}
		amount, relative = a, r
	} else {
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return false
		}
		amount = n
	}

	if relative && out.Kind != KindRelative {
		out.Kind = KindRelative
		out.Amount = out.Value
		out.Mask = v.zero
	}

	out.Value = v.l.set(out.Value, i, amount)
	out.Amount = v.l.set(out.Amount, i, amount)
	if relative {
		out.Mask = v.l.set(out.Mask, i, 1)
	}
	return true
}

// parseComponent parses a number where a leading sign marks a relative amount.
func parseComponent(s string) (amount float64, relative bool, ok bool) {
	if s == "" {
		return 0, false, false
	}
	sign := 1.0
	switch s[0] {
	case '+':
		relative = true
		s = s[1:]
	case '-':
		relative = true
		sign = -1
		s = s[1:]
	}
	n, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return 0, false, false
	}
	return n * sign, relative, true
}
