package build

import (
	"fmt"
	"os"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"gopkg.in/yaml.v2"
)

const (
	animationKey  = "animation:"
	transitionKey = "transition:"
)

// Animation is a named definition bound to the registry it came from. Every call
// to Attrimators builds a new set, with the next animation queued after it.
type Animation struct {
	name     string
	def      Definition
	registry *Registry
}

func (a *Animation) Name() string           { return a.name }
func (a *Animation) Definition() Definition { return a.def }

func (a *Animation) Attrimators() (*attrimator.Map, error) {
	return a.attrimators(map[string]bool{})
}

func (a *Animation) attrimators(seen map[string]bool) (*attrimator.Map, error) {
	if seen[a.name] {
		return nil, fmt.Errorf("%w: %s", attrimator.ErrCycle, a.name)
	}
	seen[a.name] = true

	m, err := a.def.Attrimators(a.registry.factory, a.registry.easings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	if a.def.Next == "" {
		return m, nil
	}

	next, err := a.registry.Animation(a.def.Next)
	if err != nil {
		return nil, err
	}
	nm, err := next.attrimators(seen)
	if err != nil {
		return nil, err
	}
	if err = m.QueueMap(nm, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// Registry holds the named animations and transitions of a process. Clear drops
// everything registered so far.
type Registry struct {
	logger  l.Wrapper
	factory Factory
	easings *easing.Registry
	items   *cache.Cache
}

// NewRegistry creates an instance of a Registry. A nil easings uses the built in
// easings.
func NewRegistry(factory Factory, easings *easing.Registry, logger l.Wrapper) *Registry {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	if easings == nil {
		easings = easing.NewRegistry()
	}

	r := new(Registry)
	r.logger = logger.WithFields(l.StringField(l.ClsKey, "registryImpl"))
	r.factory = factory
	r.easings = easings
	r.items = cache.New(cache.NoExpiration, 0)
	return r
}

func (r *Registry) Easings() *easing.Registry { return r.easings }

// Define registers an animation after checking that it builds. Animations it
// names as next may be defined later.
func (r *Registry) Define(name string, def Definition) error {
	a := &Animation{name: name, def: def, registry: r}
	if _, err := def.Attrimators(r.factory, r.easings); err != nil {
		r.logger.WithFields(l.ErrorField(err), l.StringField("animation", name)).Error("invalid animation")
		return fmt.Errorf("%s: %w", name, err)
	}
	r.items.Set(animationKey+name, a, cache.NoExpiration)
	return nil
}

func (r *Registry) DefineTransition(name string, def TransitionDefinition) error {
	t, err := def.Transition(r.easings)
	if err != nil {
		r.logger.WithFields(l.ErrorField(err), l.StringField("transition", name)).Error("invalid transition")
		return fmt.Errorf("%s: %w", name, err)
	}
	r.items.Set(transitionKey+name, t, cache.NoExpiration)
	return nil
}

func (r *Registry) Animation(name string) (*Animation, error) {
	if v, ok := r.items.Get(animationKey + name); ok {
		return v.(*Animation), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAnimation, name)
}

// Transition returns the named transition. An empty name gives the default.
func (r *Registry) Transition(name string) (attrimator.Transition, error) {
	if name == "" {
		return attrimator.DefaultTransition(), nil
	}
	if v, ok := r.items.Get(transitionKey + name); ok {
		return v.(attrimator.Transition), nil
	}
	return attrimator.Transition{}, fmt.Errorf("%w: %s", ErrUnknownTransition, name)
}

// Animations returns the sorted names of the registered animations.
func (r *Registry) Animations() []string {
	items := r.items.Items()
	names := make(map[string]bool)
	for k := range items {
		if len(k) > len(animationKey) && k[:len(animationKey)] == animationKey {
			names[k[len(animationKey):]] = true
		}
	}
	return sortedKeys(names)
}

func (r *Registry) Size() int {
	return r.items.ItemCount()
}

func (r *Registry) Clear() {
	r.items.Flush()
	r.logger.Debug("cleared")
}

// Load registers everything in a definitions file.
func (r *Registry) Load(data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	for _, name := range sortedKeys(f.Transitions) {
		if err := r.DefineTransition(name, f.Transitions[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(f.Animations) {
		if err := r.Define(name, f.Animations[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(f.Animations) {
		if next := f.Animations[name].Next; next != "" {
			if _, err := r.Animation(next); err != nil {
				return fmt.Errorf("%s: next: %w", name, err)
			}
		}
	}

	r.logger.WithFields(l.IntField("animations", len(f.Animations)), l.IntField("transitions", len(f.Transitions))).Debug("loaded")
	return nil
}

func (r *Registry) LoadFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return r.Load(data)
}
