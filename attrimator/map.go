package attrimator

import (
	"math"
)

// Map holds at most one attrimator chain per attribute. Iteration follows
// insertion order until a removal, which swaps the last entry into the gap.
type Map struct {
	values  []Attrimator
	keys    []string
	indices map[string]int
}

// NewMap creates an instance of a Map.
func NewMap() *Map {
	m := new(Map)
	m.indices = make(map[string]int)
	return m
}

// Put places a chain under its attribute, replacing any chain already there.
func (m *Map) Put(a Attrimator) {
	attr := a.Attribute()
	if i, ok := m.indices[attr]; ok {
		m.values[i] = a
		return
	}
	m.indices[attr] = len(m.values)
	m.values = append(m.values, a)
	m.keys = append(m.keys, attr)
}

func (m *Map) PutMap(other *Map) {
	for _, a := range other.values {
		m.Put(a)
	}
}

func (m *Map) Get(attr string) (Attrimator, bool) {
	i, ok := m.indices[attr]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

func (m *Map) Has(attr string) bool {
	_, ok := m.indices[attr]
	return ok
}

// IndexOf returns the position of attr or -1.
func (m *Map) IndexOf(attr string) int {
	if i, ok := m.indices[attr]; ok {
		return i
	}
	return -1
}

func (m *Map) At(i int) Attrimator {
	return m.values[i]
}

func (m *Map) Remove(attr string) bool {
	i, ok := m.indices[attr]
	if !ok {
		return false
	}
	m.RemoveAt(i)
	return true
}

// RemoveAt swaps the last entry into position i.
func (m *Map) RemoveAt(i int) {
	if i < 0 || i >= len(m.values) {
		return
	}
	removed := m.keys[i]
	last := len(m.values) - 1
	if i < last {
		m.values[i] = m.values[last]
		m.keys[i] = m.keys[last]
		m.indices[m.keys[i]] = i
	}
	m.values[last] = nil
	m.values = m.values[:last]
	m.keys = m.keys[:last]
	delete(m.indices, removed)
}

// HasOverlap reports whether any attribute is in both maps.
func (m *Map) HasOverlap(other *Map) bool {
	small, large := m, other
	if small.Size() > large.Size() {
		small, large = large, small
	}
	for _, k := range small.keys {
		if large.Has(k) {
			return true
		}
	}
	return false
}

func (m *Map) Size() int {
	return len(m.values)
}

func (m *Map) Clear() {
	m.values = nil
	m.keys = nil
	m.indices = make(map[string]int)
}

// Keys returns the attributes in iteration order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Values returns the chain heads in iteration order.
func (m *Map) Values() []Attrimator {
	return append([]Attrimator(nil), m.values...)
}

// Each calls fn for every chain head in iteration order over a snapshot.
func (m *Map) Each(fn func(a Attrimator)) {
	for _, a := range m.Values() {
		fn(a)
	}
}

// Queue appends a to the chain of its attribute, or places it when there is none.
func (m *Map) Queue(a Attrimator) error {
	if existing, ok := m.Get(a.Attribute()); ok {
		return existing.Queue(a)
	}
	m.Put(a)
	return nil
}

// QueueMap queues every chain of incoming so they all start together once the
// finite chains of m have run out. An infinite chain can never be queued after,
// so its incoming replacement is delayed by the whole remaining time and put in
// its place, and onNew is told about it.
func (m *Map) QueueMap(incoming *Map, onNew func(a Attrimator)) error {
	maxRemaining := m.TimeRemaining()

	for i := len(incoming.values) - 1; i >= 0; i-- {
		a := incoming.values[i]
		existing, ok := m.Get(a.Attribute())
		if ok && !existing.IsInfinite() {
			a.AddDelay(maxRemaining - existing.TimeRemaining())
			if err := existing.Queue(a); err != nil {
				return err
			}
			continue
		}

		a.AddDelay(maxRemaining)
		m.Put(a)
		if onNew != nil {
			onNew(a)
		}
	}
	return nil
}

// UnqueueAt replaces the chain head at i with its successor, removing the
// attribute when there is none.
func (m *Map) UnqueueAt(i int) {
	if next := m.values[i].Next(); next != nil {
		m.values[i] = next
		return
	}
	m.RemoveAt(i)
}

// Clone returns a map of unstarted copies of every chain.
func (m *Map) Clone() *Map {
	c := NewMap()
	for _, a := range m.values {
		c.Put(a.Clone())
	}
	return c
}

// TimeRemaining is the longest remaining time of the finite chains.
func (m *Map) TimeRemaining() float64 {
	r := 0.0
	for _, a := range m.values {
		if !a.IsInfinite() {
			r = math.Max(r, a.TimeRemaining())
		}
	}
	return r
}
