package attrimator

import (
	"sort"
)

// Frame holds the latest value of every attribute of one subject and which of
// them changed since the last flush.
type Frame struct {
	values  map[string]any
	updated map[string]bool
}

// NewFrame creates an instance of a Frame.
func NewFrame() *Frame {
	f := new(Frame)
	f.values = make(map[string]any)
	f.updated = make(map[string]bool)
	return f
}

// Get returns the current value of an attribute.
func (f *Frame) Get(attr string) (any, bool) {
	v, ok := f.values[attr]
	return v, ok
}

func (f *Frame) Has(attr string) bool {
	_, ok := f.values[attr]
	return ok
}

// Set writes a value and marks it for the next flush.
func (f *Frame) Set(attr string, v any) {
	if f == nil {
		return
	}
	f.values[attr] = v
	f.updated[attr] = true
}

// Init writes a value without marking it as updated.
func (f *Frame) Init(attr string, v any) {
	f.values[attr] = v
}

func (f *Frame) Delete(attr string) {
	delete(f.values, attr)
	delete(f.updated, attr)
}

func (f *Frame) IsUpdated(attr string) bool {
	return f.updated[attr]
}

// Flush returns the updated values and clears the updated marks.
func (f *Frame) Flush() map[string]any {
	if len(f.updated) == 0 {
		return nil
	}
	out := make(map[string]any, len(f.updated))
	for attr := range f.updated {
		out[attr] = f.values[attr]
	}
	f.updated = make(map[string]bool)
	return out
}

// Values returns a copy of every value in the frame.
func (f *Frame) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for attr, v := range f.values {
		out[attr] = v
	}
	return out
}

// Attributes returns the sorted names of the attributes in the frame.
func (f *Frame) Attributes() []string {
	names := make([]string, 0, len(f.values))
	for attr := range f.values {
		names = append(names, attr)
	}
	sort.Strings(names)
	return names
}
