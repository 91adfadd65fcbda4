// Package subject adapts plain property bags to the animator.
package subject

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/anim8/animator"
	"github.com/matt-g-everett/anim8/build"
	"github.com/matt-g-everett/anim8/calc"
	"github.com/spf13/cast"
)

var ErrUnknownAttribute = build.ErrUnknownAttribute

// Object is a property bag whose attributes are described by a schema.
type Object struct {
	schema   *build.Schema
	values   map[string]any
	onChange func(o *Object, changed map[string]any)
}

// NewObject creates an instance of an Object. Values are copied.
func NewObject(schema *build.Schema, values map[string]any) *Object {
	o := new(Object)
	o.schema = schema
	o.values = make(map[string]any, len(values))
	for k, v := range values {
		o.values[k] = v
	}
	return o
}

// OnChange is called after every Apply with the attributes that changed.
func (o *Object) OnChange(fn func(o *Object, changed map[string]any)) {
	o.onChange = fn
}

func (o *Object) Schema() *build.Schema { return o.schema }

func (o *Object) Attribute(name string) (animator.Attribute, error) {
	return o.schema.Attribute(name)
}

func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

func (o *Object) Apply(values map[string]any) {
	for k, v := range values {
		o.values[k] = v
	}
	if o.onChange != nil {
		o.onChange(o, values)
	}
}

// Values returns a copy of every attribute set on the object.
func (o *Object) Values() map[string]any {
	out := make(map[string]any, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}

// Number returns a scalar attribute.
func (o *Object) Number(name string) (float64, bool) {
	v, ok := o.values[name]
	if !ok {
		return 0, false
	}
	n, err := cast.ToFloat64E(v)
	return n, err == nil
}

// Color returns a colour attribute, falling back to the attribute's default when
// the object has no value yet.
func (o *Object) Color(name string) (colorful.Color, bool) {
	v, ok := o.values[name]
	if !ok {
		a, err := o.schema.Attribute(name)
		if err != nil {
			return colorful.Color{}, false
		}
		v = a.CloneDefault()
	}

	switch c := v.(type) {
	case calc.RGB:
		return c.Colorful(), true
	case calc.RGBA:
		return c.Colorful(), true
	case colorful.Color:
		return c, true
	case string:
		parsed, err := colorful.Hex(c)
		return parsed, err == nil
	}
	return colorful.Color{}, false
}
