package easing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
	"github.com/spf13/cast"
)

// DefaultName is the easing used when none is given.
const DefaultName = "ease"

// Registry resolves easings and easing types by name. Names may be combined as
// "easing-type", for example "bounce-out".
type Registry struct {
	easings map[string]Func
	types   map[string]Type
}

// NewRegistry creates an instance of a Registry with the built in easings and
// types registered.
func NewRegistry() *Registry {
	r := new(Registry)
	r.easings = make(map[string]Func)
	r.types = make(map[string]Type)

	for name, f := range map[string]Func{
		"linear":      Linear,
		"quad":        Quad,
		"ease":        Ease,
		"cubic":       Cubic,
		"quartic":     Quartic,
		"quintic":     Quintic,
		"back":        Back,
		"sine":        Sine,
		"overshot":    Overshot,
		"elastic":     Elastic,
		"revisit":     Revisit,
		"lasso":       Lasso,
		"slowbounce":  SlowBounce,
		"bounce":      Bounce,
		"smallbounce": SmallBounce,
		"tinybounce":  TinyBounce,
		"hesitant":    Hesitant,
		"sqrt":        Sqrt,
		"sqrtf":       Sqrtf,
		"log10":       Log10,
		"slingshot":   Slingshot,
		"circular":    Circular,
		"gentle":      Gentle,

		// Robert Penner's equations.
		"inQuad":       ease.InQuad,
		"outQuad":      ease.OutQuad,
		"inOutQuad":    ease.InOutQuad,
		"inCubic":      ease.InCubic,
		"outCubic":     ease.OutCubic,
		"inOutCubic":   ease.InOutCubic,
		"inQuart":      ease.InQuart,
		"outQuart":     ease.OutQuart,
		"inOutQuart":   ease.InOutQuart,
		"inQuint":      ease.InQuint,
		"outQuint":     ease.OutQuint,
		"inOutQuint":   ease.InOutQuint,
		"inSine":       ease.InSine,
		"outSine":      ease.OutSine,
		"inOutSine":    ease.InOutSine,
		"inExpo":       ease.InExpo,
		"outExpo":      ease.OutExpo,
		"inOutExpo":    ease.InOutExpo,
		"inCirc":       ease.InCirc,
		"outCirc":      ease.OutCirc,
		"inOutCirc":    ease.InOutCirc,
		"inElastic":    ease.InElastic,
		"outElastic":   ease.OutElastic,
		"inOutElastic": ease.InOutElastic,
		"inBack":       ease.InBack,
		"outBack":      ease.OutBack,
		"inOutBack":    ease.InOutBack,
		"inBounce":     ease.InBounce,
		"outBounce":    ease.OutBounce,
		"inOutBounce":  ease.InOutBounce,

		"cssEase":      Ease,
		"cssEaseIn":    Quad,
		"cssEaseOut":   Out(Quad),
		"cssEaseInOut": InOut(Quad),
		"cssLinear":    Linear,
	} {
		r.Register(name, f)
	}

	for name, t := range map[string]Type{
		"in":      In,
		"out":     Out,
		"inout":   InOut,
		"yoyo":    Yoyo,
		"mirror":  Mirror,
		"reverse": Reverse,
		"flip":    Flip,
	} {
		r.RegisterType(name, t)
	}

	return r
}

// Register adds or replaces a named easing.
func (r *Registry) Register(name string, f Func) {
	r.easings[name] = f
}

// RegisterType adds or replaces a named easing type.
func (r *Registry) RegisterType(name string, t Type) {
	r.types[name] = t
}

// Default returns the easing used when none is specified.
func (r *Registry) Default() Func {
	if f, ok := r.easings[DefaultName]; ok {
		return f
	}
	return Ease
}

// Get returns the easing with the given name.
func (r *Registry) Get(name string) (Func, error) {
	if f, ok := r.easings[name]; ok {
		return f, nil
	}

	if i := strings.LastIndex(name, "-"); i > 0 {
		f, ok := r.easings[name[:i]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEasing, name)
		}
		t, ok := r.types[name[i+1:]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, name[i+1:])
		}
		return t(f), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownEasing, name)
}

// GetType returns the easing type with the given name.
func (r *Registry) GetType(name string) (Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

// Parse resolves an easing from a name, a function or four bezier control values.
// Nil gives the default easing.
func (r *Registry) Parse(raw any) (Func, error) {
	switch e := raw.(type) {
	case nil:
		return r.Default(), nil
	case Func:
		return e, nil
	case func(float64) float64:
		return e, nil
	case string:
		if e == "" {
			return r.Default(), nil
		}
		return r.Get(e)
	case []float64:
		if len(e) == 4 {
			return Bezier(e[0], e[1], e[2], e[3]), nil
		}
	case []any:
		if len(e) == 4 {
			values := make([]float64, 4)
			for i := range e {
				v, err := cast.ToFloat64E(e[i])
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrUnknownEasing, raw)
				}
				values[i] = v
			}
			return Bezier(values[0], values[1], values[2], values[3]), nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEasing, raw)
}

// Names returns the sorted names of the registered easings.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.easings))
	for name := range r.easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
