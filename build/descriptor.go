package build

import (
	"fmt"

	"github.com/matt-g-everett/anim8/animator"
	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/matt-g-everett/anim8/path"
	"github.com/spf13/cast"
)

// Attribute is an animator.Attribute that can also build attrimators from
// definitions.
type Attribute interface {
	animator.Attribute
	Calculator() string
	build(p piece) (attrimator.Attrimator, error)
}

type pieceKind int

const (
	pieceInitial pieceKind = iota
	pieceFinal
	pieceTween
	pieceMove
	pieceDelta
	pieceKeyframe
	piecePath
	pieceSpring
	piecePhysics
)

// piece is what a definition asks of one attribute, before its value type is known.
type piece struct {
	kind      pieceKind
	values    []interface{}
	deltas    []float64
	easings   []easing.Func
	timing    attrimator.Timing
	scaleBase interface{}
	path      *PathDefinition
	spring    *SpringDefinition
	physics   *PhysicsDefinition
}

// Descriptor is an attribute whose values are T.
type Descriptor[T any] struct {
	name string
	calc calc.Calculator[T]
	def  T
}

// NewDescriptor creates an instance of a Descriptor.
func NewDescriptor[T any](name string, c calc.Calculator[T], def T) *Descriptor[T] {
	d := new(Descriptor[T])
	d.name = name
	d.calc = c
	d.def = def
	return d
}

func (d *Descriptor[T]) Name() string       { return d.name }
func (d *Descriptor[T]) Calculator() string { return d.calc.Name() }
func (d *Descriptor[T]) CloneDefault() any  { return d.calc.Clone(d.def) }

// Parse returns a concrete value. Computed input like "+1" or true is rejected.
func (d *Descriptor[T]) Parse(raw any) (any, bool) {
	v, ok := d.calc.Parse(raw, d.def)
	if !ok || v.IsComputed() {
		return nil, false
	}
	return v.Value, true
}

func (d *Descriptor[T]) Tween(start, end any, t attrimator.Timing) (attrimator.Attrimator, error) {
	s, err := d.value(start)
	if err != nil {
		return nil, err
	}
	e, err := d.value(end)
	if err != nil {
		return nil, err
	}
	return attrimator.NewEvent[T](d.name, path.NewTween(d.name, d.calc, s, e), t), nil
}

func (d *Descriptor[T]) value(raw any) (calc.Value[T], error) {
	v, ok := d.calc.Parse(raw, d.def)
	if !ok {
		return calc.Value[T]{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, d.name, raw)
	}
	return v, nil
}

// optional parses raw falling back to def when raw is nil.
func (d *Descriptor[T]) optional(raw any, def calc.Value[T]) (calc.Value[T], error) {
	if raw == nil {
		return def, nil
	}
	return d.value(raw)
}

func (d *Descriptor[T]) values(raws []interface{}) ([]calc.Value[T], error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: %s: no values", ErrInvalidValue, d.name)
	}
	out := make([]calc.Value[T], len(raws))
	for i, raw := range raws {
		v, err := d.value(raw)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// relative turns a literal into an offset from the current value.
func (d *Descriptor[T]) relative(v calc.Value[T]) calc.Value[T] {
	if v.Kind == calc.KindLiteral {
		return calc.Relative(v.Value, d.calc.One())
	}
	return v
}

func (d *Descriptor[T]) event(p path.Path[T], pc piece) (attrimator.Attrimator, error) {
	e := attrimator.NewEvent[T](d.name, p, pc.timing)
	if pc.scaleBase != nil {
		sb, err := d.value(pc.scaleBase)
		if err != nil {
			return nil, err
		}
		e.WithScaleBase(sb)
	}
	return e, nil
}

func (d *Descriptor[T]) build(pc piece) (attrimator.Attrimator, error) {
	switch pc.kind {
	case pieceSpring:
		return d.buildSpring(pc.spring)
	case piecePhysics:
		return d.buildPhysics(pc.physics)
	case piecePath:
		p, err := d.buildPath(pc.path)
		if err != nil {
			return nil, err
		}
		return d.event(p, pc)
	}

	points, err := d.values(pc.values)
	if err != nil {
		return nil, err
	}

	var p path.Path[T]
	switch pc.kind {
	case pieceInitial, pieceFinal:
		p = path.NewPoint(d.name, d.calc, points[0])
	case pieceTween:
		if len(points) < 2 {
			return nil, fmt.Errorf("%w: %s: tween needs two values", ErrInvalidValue, d.name)
		}
		p = path.NewTween(d.name, d.calc, points[0], points[1])
	case pieceMove:
		p = path.NewTween(d.name, d.calc, calc.Current[T](), d.relative(points[0]))
	case pieceDelta:
		p = path.NewDelta(d.name, d.calc, points, pc.deltas)
	case pieceKeyframe:
		p = path.NewKeyframe(d.name, d.calc, points, pc.deltas, pc.easings)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownPath, pc.kind)
	}
	return d.event(p, pc)
}

func (d *Descriptor[T]) buildPath(def *PathDefinition) (path.Path[T], error) {
	points, err := d.values(def.Points)
	if err != nil {
		return nil, err
	}
	want := map[string]int{"point": 1, "tween": 2, "quadratic": 3, "cubic": 4}

	var p path.Path[T]
	switch def.Type {
	case "point", "tween", "quadratic", "cubic":
		if len(points) != want[def.Type] {
			return nil, fmt.Errorf("%w: %s: %s path needs %d points", ErrInvalidValue, d.name, def.Type, want[def.Type])
		}
	case "delta", "keyframe", "jump":
		if def.Deltas != nil && len(def.Deltas) != len(points) {
			return nil, fmt.Errorf("%w: %s: %d deltas for %d points", ErrInvalidValue, d.name, len(def.Deltas), len(points))
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPath, def.Type)
	}

	switch def.Type {
	case "point":
		p = path.NewPoint(d.name, d.calc, points[0])
	case "tween":
		p = path.NewTween(d.name, d.calc, points[0], points[1])
	case "quadratic":
		p = path.NewQuadratic(d.name, d.calc, points[0], points[1], points[2])
	case "cubic":
		p = path.NewCubic(d.name, d.calc, points[0], points[1], points[2], points[3])
	case "delta":
		p = path.NewDelta(d.name, d.calc, points, def.Deltas)
	case "keyframe":
		p = path.NewKeyframe(d.name, d.calc, points, def.Deltas, def.easings)
	case "jump":
		p = path.NewJump(d.name, d.calc, points)
	}

	if def.Granularity > 0 {
		p = path.NewCompiled(d.name, p, def.Granularity)
	}
	return p, nil
}

func (d *Descriptor[T]) buildSpring(def *SpringDefinition) (attrimator.Attrimator, error) {
	o := attrimator.DefaultSpringOptions[T]()
	var err error
	if o.Rest, err = d.optional(def.Rest, o.Rest); err != nil {
		return nil, err
	}
	if o.Position, err = d.optional(def.Position, o.Position); err != nil {
		return nil, err
	}
	if o.Velocity, err = d.optional(def.Velocity, o.Velocity); err != nil {
		return nil, err
	}
	if o.Gravity, err = d.optional(def.Gravity, o.Gravity); err != nil {
		return nil, err
	}
	o.FinishOnRest = def.FinishOnRest
	o.Delay = float64(def.Delay)

	var force attrimator.Force[T]
	switch def.Type {
	case "", "linear":
		stiffness, err := d.literal(def.Stiffness)
		if err != nil {
			return nil, err
		}
		damping, err := d.literal(def.Damping)
		if err != nil {
			return nil, err
		}
		force = attrimator.LinearForce[T]{Stiffness: stiffness, Damping: damping}
	case "distance":
		stiffness, damping, err := scalars(d.name, def.Stiffness, def.Damping)
		if err != nil {
			return nil, err
		}
		force = attrimator.DistanceForce[T]{Distance: def.Distance, Stiffness: stiffness, Damping: damping}
	case "harmonic":
		force = attrimator.HarmonicForce[T]{Frequency: def.Frequency, DampingRatio: def.DampingRatio}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpring, def.Type)
	}

	s := attrimator.NewSpring[T](d.name, d.calc, force, o)
	if def.StopAt != nil {
		s.StopIn(float64(*def.StopAt))
	}
	return s, nil
}

// literal parses a value that cannot depend on the current value. Nil gives the
// default of the attribute.
func (d *Descriptor[T]) literal(raw any) (T, error) {
	v, err := d.optional(raw, calc.Literal(d.def))
	if err != nil {
		return d.def, err
	}
	if v.IsComputed() {
		return d.def, fmt.Errorf("%w: %s: %v is not a literal", ErrInvalidValue, d.name, raw)
	}
	return v.Value, nil
}

func (d *Descriptor[T]) buildPhysics(def *PhysicsDefinition) (attrimator.Attrimator, error) {
	o := attrimator.DefaultPhysicsOptions[T]()
	var err error
	if o.Position, err = d.optional(def.Position, o.Position); err != nil {
		return nil, err
	}
	if o.Velocity, err = d.optional(def.Velocity, o.Velocity); err != nil {
		return nil, err
	}
	if o.Acceleration, err = d.optional(def.Acceleration, o.Acceleration); err != nil {
		return nil, err
	}
	if def.Terminal != nil {
		o.Terminal = *def.Terminal
	}
	o.Delay = float64(def.Delay)

	p := attrimator.NewPhysics[T](d.name, d.calc, o)
	if def.StopAt != nil {
		p.StopIn(float64(*def.StopAt))
	}
	return p, nil
}

func scalars(attr string, raws ...interface{}) (float64, float64, error) {
	out := make([]float64, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, attr, raw)
		}
		out[i] = v
	}
	return out[0], out[1], nil
}
