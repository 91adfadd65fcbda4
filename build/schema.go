package build

import (
	"fmt"

	"github.com/matt-g-everett/anim8/calc"
)

// Schema is the set of attributes a kind of subject has.
type Schema struct {
	attributes map[string]Attribute
}

// NewSchema creates an instance of a Schema.
func NewSchema(attributes ...Attribute) *Schema {
	s := new(Schema)
	s.attributes = make(map[string]Attribute)
	for _, a := range attributes {
		s.Add(a)
	}
	return s
}

// Add adds or replaces an attribute.
func (s *Schema) Add(a Attribute) {
	s.attributes[a.Name()] = a
}

func (s *Schema) Attribute(name string) (Attribute, error) {
	if a, ok := s.attributes[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
}

func (s *Schema) Names() []string {
	return sortedKeys(s.attributes)
}

// NewAttribute creates an attribute for a named calculator: number, 2d, 3d,
// quaternion, rgb or rgba. A nil def uses the calculator's additive identity.
func NewAttribute(name, calculator string, def interface{}) (Attribute, error) {
	switch calculator {
	case "number":
		return typed(name, calc.Number(), def)
	case "2d":
		return typed(name, calc.Point2(), def)
	case "3d":
		return typed(name, calc.Point3(), def)
	case "quaternion":
		return typed(name, calc.Quat(), def)
	case "rgb":
		return typed(name, calc.Color(), def)
	case "rgba":
		return typed(name, calc.ColorAlpha(), def)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, calculator)
}

func typed[T any](name string, c calc.Calculator[T], raw interface{}) (Attribute, error) {
	v, ok := c.Parse(raw, c.Create())
	if !ok || v.IsComputed() {
		return nil, fmt.Errorf("%w: default of %s: %v", ErrInvalidValue, name, raw)
	}
	return NewDescriptor(name, c, v.Value), nil
}
