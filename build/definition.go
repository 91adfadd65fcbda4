package build

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/spf13/cast"
)

// Definition describes an animation declaratively. Each section builds
// attrimators for the attributes it names; when two sections name the same
// attribute the later one in this order wins: values, keyframe, paths,
// initial/final, tweenFrom, tweenTo, move, springs, physics.
type Definition struct {
	Options `yaml:",inline"`

	// Teasing is the timeline easing of keyframe animations. Defaults to linear.
	Teasing interface{} `yaml:"teasing"`

	Values map[string][]interface{} `yaml:"values"`
	// Deltas is either one list shared by every attribute in Values or a list
	// per attribute. Missing deltas spread the values evenly.
	Deltas    interface{}                       `yaml:"deltas"`
	Keyframe  map[string]map[string]interface{} `yaml:"keyframe"`
	Paths     map[string]PathDefinition         `yaml:"paths"`
	Initial   map[string]interface{}            `yaml:"initial"`
	Final     map[string]interface{}            `yaml:"final"`
	TweenFrom map[string]interface{}            `yaml:"tweenFrom"`
	TweenTo   map[string]interface{}            `yaml:"tweenTo"`
	Move      map[string]interface{}            `yaml:"move"`
	Springs   map[string]SpringDefinition       `yaml:"springs"`
	Physics   map[string]PhysicsDefinition      `yaml:"physics"`

	// Next names an animation queued after this one.
	Next string `yaml:"next"`
}

type PathDefinition struct {
	Type        string        `yaml:"type"`
	Points      []interface{} `yaml:"points"`
	Deltas      []float64     `yaml:"deltas"`
	Easings     []interface{} `yaml:"easings"`
	Granularity int           `yaml:"granularity"`

	easings []easing.Func
}

type SpringDefinition struct {
	// Type is linear, distance or harmonic.
	Type         string      `yaml:"type"`
	Rest         interface{} `yaml:"rest"`
	Position     interface{} `yaml:"position"`
	Velocity     interface{} `yaml:"velocity"`
	Gravity      interface{} `yaml:"gravity"`
	Stiffness    interface{} `yaml:"stiffness"`
	Damping      interface{} `yaml:"damping"`
	Distance     float64     `yaml:"distance"`
	Frequency    float64     `yaml:"frequency"`
	DampingRatio float64     `yaml:"dampingRatio"`
	FinishOnRest bool        `yaml:"finishOnRest"`
	Delay        Millis      `yaml:"delay"`
	StopAt       *Millis     `yaml:"stopAt"`
}

type PhysicsDefinition struct {
	Position     interface{} `yaml:"position"`
	Velocity     interface{} `yaml:"velocity"`
	Acceleration interface{} `yaml:"acceleration"`
	Terminal     *float64    `yaml:"terminal"`
	Delay        Millis      `yaml:"delay"`
	StopAt       *Millis     `yaml:"stopAt"`
}

type TransitionDefinition struct {
	Time        *Millis     `yaml:"time"`
	Outro       *float64    `yaml:"outro"`
	Intro       float64     `yaml:"intro"`
	Easing      interface{} `yaml:"easing"`
	Granularity int         `yaml:"granularity"`
}

// Transition resolves the definition, filling gaps with the defaults.
func (t *TransitionDefinition) Transition(easings *easing.Registry) (attrimator.Transition, error) {
	if easings == nil {
		easings = easing.NewRegistry()
	}
	out := attrimator.DefaultTransition()
	if t.Time != nil {
		out.Time = float64(*t.Time)
	}
	if t.Outro != nil {
		out.OutroDelta = *t.Outro
	}
	out.IntroDelta = t.Intro
	out.Granularity = t.Granularity
	if t.Easing != nil {
		f, err := easings.Parse(t.Easing)
		if err != nil {
			return out, err
		}
		out.Easing = f
	}
	return out, nil
}

// File is the layout of an animation definitions file.
type File struct {
	Animations  map[string]Definition           `yaml:"animations"`
	Transitions map[string]TransitionDefinition `yaml:"transitions"`
}

// Factory finds the attributes a definition names.
type Factory interface {
	Attribute(name string) (Attribute, error)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attrimators builds a fresh set of attrimators from the definition.
func (d *Definition) Attrimators(f Factory, easings *easing.Registry) (*attrimator.Map, error) {
	if easings == nil {
		easings = easing.NewRegistry()
	}
	m := attrimator.NewMap()
	put := func(attr string, pc piece) error {
		a, err := f.Attribute(attr)
		if err != nil {
			return err
		}
		x, err := a.build(pc)
		if err != nil {
			return fmt.Errorf("%s: %w", attr, err)
		}
		m.Put(x)
		return nil
	}
	timed := func(attr string, pc piece) (piece, error) {
		t, err := d.Timing(attr, easings)
		if err != nil {
			return pc, err
		}
		pc.timing = t
		pc.scaleBase = d.scaleBase(attr)
		return pc, nil
	}

	deltas, err := d.deltas()
	if err != nil {
		return nil, err
	}
	for _, attr := range sortedKeys(d.Values) {
		pc, err := timed(attr, piece{kind: pieceDelta, values: d.Values[attr], deltas: deltas[attr]})
		if err != nil {
			return nil, err
		}
		if err = put(attr, pc); err != nil {
			return nil, err
		}
	}

	if err = d.keyframes(easings, put, timed); err != nil {
		return nil, err
	}

	for _, attr := range sortedKeys(d.Paths) {
		def := d.Paths[attr]
		def.easings = make([]easing.Func, len(def.Easings))
		for i, raw := range def.Easings {
			if def.easings[i], err = easings.Parse(raw); err != nil {
				return nil, err
			}
		}
		pc, err := timed(attr, piece{kind: piecePath, path: &def})
		if err != nil {
			return nil, err
		}
		if err = put(attr, pc); err != nil {
			return nil, err
		}
	}

	if err = d.points(put, timed); err != nil {
		return nil, err
	}

	for _, section := range []struct {
		values map[string]interface{}
		tween  func(v interface{}) piece
	}{
		{d.TweenFrom, func(v interface{}) piece { return piece{kind: pieceTween, values: []interface{}{v, true}} }},
		{d.TweenTo, func(v interface{}) piece { return piece{kind: pieceTween, values: []interface{}{true, v}} }},
		{d.Move, func(v interface{}) piece { return piece{kind: pieceMove, values: []interface{}{v}} }},
	} {
		for _, attr := range sortedKeys(section.values) {
			pc, err := timed(attr, section.tween(section.values[attr]))
			if err != nil {
				return nil, err
			}
			if err = put(attr, pc); err != nil {
				return nil, err
			}
		}
	}

	for _, attr := range sortedKeys(d.Springs) {
		def := d.Springs[attr]
		if err = put(attr, piece{kind: pieceSpring, spring: &def}); err != nil {
			return nil, err
		}
	}
	for _, attr := range sortedKeys(d.Physics) {
		def := d.Physics[attr]
		if err = put(attr, piece{kind: piecePhysics, physics: &def}); err != nil {
			return nil, err
		}
	}

	if m.Size() == 0 {
		return nil, ErrNoAttrimators
	}
	return m, nil
}

// deltas expands Deltas into a list per attribute of Values.
func (d *Definition) deltas() (map[string][]float64, error) {
	out := make(map[string][]float64)
	switch x := d.Deltas.(type) {
	case nil:
	case []interface{}:
		list, err := floats(x)
		if err != nil {
			return nil, err
		}
		for attr := range d.Values {
			out[attr] = list
		}
	default:
		m, err := cast.ToStringMapE(x)
		if err != nil {
			return nil, fmt.Errorf("%w: deltas %v", ErrInvalidValue, x)
		}
		for attr, raw := range m {
			items, ok := raw.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: deltas of %s", ErrInvalidValue, attr)
			}
			if out[attr], err = floats(items); err != nil {
				return nil, err
			}
		}
	}

	for attr, list := range out {
		if values, ok := d.Values[attr]; ok && len(values) != len(list) {
			return nil, fmt.Errorf("%w: %d deltas for %d values of %s", ErrInvalidValue, len(list), len(values), attr)
		}
	}
	return out, nil
}

func floats(items []interface{}) ([]float64, error) {
	out := make([]float64, len(items))
	for i, item := range items {
		v, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, item)
		}
		out[i] = v
	}
	return out, nil
}

var keyframeAliases = map[string]string{
	"from":    "0",
	"start":   "0",
	"initial": "0",
	"first":   "0",
	"half":    "50",
	"middle":  "50",
	"to":      "100",
	"end":     "100",
	"last":    "100",
}

type keyframe struct {
	at     float64
	values map[string]interface{}
}

// frames normalises the keyframe keys: aliases are replaced, comma separated
// keys share their values and keys that are not numbers are dropped.
func (d *Definition) frames() []keyframe {
	var frames []keyframe
	for _, key := range sortedKeys(d.Keyframe) {
		values := d.Keyframe[key]
		for _, k := range strings.Split(key, ",") {
			k = strings.TrimSpace(k)
			if alias, ok := keyframeAliases[k]; ok {
				k = alias
			}
			at, err := cast.ToFloat64E(k)
			if err != nil {
				continue
			}
			frames = append(frames, keyframe{at: at, values: values})
		}
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].at < frames[j].at })
	return frames
}

func (d *Definition) keyframes(easings *easing.Registry, put func(string, piece) error, timed func(string, piece) (piece, error)) error {
	frames := d.frames()
	if len(frames) == 0 {
		return nil
	}
	teasing := d.Teasing
	if teasing == nil {
		teasing = "linear"
	}
	timeline, err := easings.Parse(teasing)
	if err != nil {
		return err
	}

	end := 0.0
	for _, f := range frames {
		end = math.Max(end, f.at)
	}

	pieces := make(map[string]*piece)
	for _, f := range frames {
		frameEasing := d.Easing
		if raw, ok := f.values["easing"]; ok {
			frameEasing = raw
		}
		delta := 0.0
		if end > 0 {
			delta = f.at / end
		}
		for _, attr := range sortedKeys(f.values) {
			if attr == "easing" {
				continue
			}
			pc, ok := pieces[attr]
			if !ok {
				pc = &piece{kind: pieceKeyframe}
				pieces[attr] = pc
			}
			raw := frameEasing
			if v, ok := d.Easings[attr]; ok {
				raw = v
			}
			e, err := easings.Parse(raw)
			if err != nil {
				return err
			}
			pc.values = append(pc.values, f.values[attr])
			pc.deltas = append(pc.deltas, delta)
			pc.easings = append(pc.easings, e)
		}
	}

	for _, attr := range sortedKeys(pieces) {
		pc, err := timed(attr, *pieces[attr])
		if err != nil {
			return err
		}
		pc.timing.Easing = timeline
		if err = put(attr, pc); err != nil {
			return err
		}
	}
	return nil
}

// points builds the initial and final sections. An attribute in both tweens
// between them, otherwise initial holds its value from the delay on and final
// jumps to its value once the duration has passed.
func (d *Definition) points(put func(string, piece) error, timed func(string, piece) (piece, error)) error {
	attrs := make(map[string]bool)
	for attr := range d.Initial {
		attrs[attr] = true
	}
	for attr := range d.Final {
		attrs[attr] = true
	}

	for _, attr := range sortedKeys(attrs) {
		initial, hasInitial := d.Initial[attr]
		final, hasFinal := d.Final[attr]

		var pc piece
		switch {
		case hasInitial && hasFinal:
			pc = piece{kind: pieceTween, values: []interface{}{initial, final}}
		case hasInitial:
			pc = piece{kind: pieceInitial, values: []interface{}{initial}}
		default:
			pc = piece{kind: pieceFinal, values: []interface{}{final}}
		}

		pc, err := timed(attr, pc)
		if err != nil {
			return err
		}
		switch pc.kind {
		case pieceInitial:
			pc.timing.Duration = 0
			pc.timing.Sleep = 0
			pc.timing.Repeat = 1
		case pieceFinal:
			pc.timing.Delay += pc.timing.Duration
			pc.timing.Duration = 0
			pc.timing.Sleep = 0
			pc.timing.Repeat = 1
			pc.timing.HasInitialState = false
		}
		if err = put(attr, pc); err != nil {
			return err
		}
	}
	return nil
}
