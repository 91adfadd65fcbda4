package calc

// A Calculator implements the arithmetic of one value shape. Values are plain Go
// values so every operation returns its result instead of writing into an
// accumulator.
type Calculator[T any] interface {
	Name() string

	// Create returns the additive identity.
	Create() T
	Zero() T
	One() T
	Infinity() T

	// Parse turns raw input into a value, possibly deferred until animation start.
	// It returns false when the input cannot be understood.
	Parse(raw any, def T) (Value[T], bool)

	Clone(a T) T
	Scale(a T, s float64) T
	Add(a, b T) T
	Adds(a, b T, s float64) T
	Sub(a, b T) T
	Mul(a, b T) T
	Interpolate(a, b T, delta float64) T

	Distance(a, b T) float64
	DistanceSq(a, b T) float64
	Length(a T) float64

	IsNaN(a T) bool
	IsZero(a T, epsilon float64) bool
	IsEqual(a, b T, epsilon float64) bool

	Min(a, b T) T
	Max(a, b T) T
	// Clamp limits the length of a to [min, max] keeping its direction.
	Clamp(a T, min, max float64) T

	Dimensions() int
	Component(a T, i int) float64
	WithComponent(a T, i int, x float64) T
}

// Kind says how a Value is resolved at animation start.
type Kind int

const (
	// KindLiteral values are used as they are.
	KindLiteral Kind = iota
	// KindCurrent values resolve to the subject's current value.
	KindCurrent
	// KindRelative values resolve to current*Mask + Amount.
	KindRelative
)

func (k Kind) String() string {
	switch k {
	case KindCurrent:
		return "current"
	case KindRelative:
		return "relative"
	}
	return "literal"
}

// Value is a possibly deferred value.
type Value[T any] struct {
	Kind   Kind
	Value  T
	Amount T
	Mask   T
}

// Literal creates a Value that is already known.
func Literal[T any](v T) Value[T] {
	return Value[T]{Kind: KindLiteral, Value: v}
}

// Current creates a Value that resolves to the current value of the attribute.
func Current[T any]() Value[T] {
	return Value[T]{Kind: KindCurrent}
}

// Relative creates a Value offset from the current value of the attribute. Components
// with a zero mask ignore the current value.
func Relative[T any](amount, mask T) Value[T] {
	return Value[T]{Kind: KindRelative, Amount: amount, Mask: mask}
}

// IsComputed returns true when the value depends on the current value.
func (v Value[T]) IsComputed() bool {
	return v.Kind != KindLiteral
}

// Resolve returns the concrete value given the current value of the attribute.
func (v Value[T]) Resolve(c Calculator[T], current T) T {
	switch v.Kind {
	case KindCurrent:
		return c.Clone(current)
	case KindRelative:
		return c.Add(c.Mul(current, v.Mask), v.Amount)
	}
	return v.Value
}

// ParseOr parses raw and falls back to def when raw is not understood.
func ParseOr[T any](c Calculator[T], raw any, def T) Value[T] {
	if v, ok := c.Parse(raw, def); ok {
		return v
	}
	return Literal(def)
}
