package build

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/easing"
	"github.com/spf13/cast"
)

// Millis is a time in milliseconds. In YAML it is either a number of
// milliseconds or a duration string like "1.5s".
type Millis float64

func (m *Millis) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := parseMillis(raw)
	if err != nil {
		return err
	}
	*m = Millis(v)
	return nil
}

func parseMillis(raw interface{}) (float64, error) {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if d, err := time.ParseDuration(s); err == nil {
			return float64(d) / float64(time.Millisecond), nil
		}
		raw = s
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: time %v", ErrInvalidValue, raw)
	}
	return v, nil
}

// Repeat is a repeat count. In YAML "inf" or "infinite" repeats forever.
type Repeat float64

func (r *Repeat) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, err := parseRepeat(raw)
	if err != nil {
		return err
	}
	*r = Repeat(v)
	return nil
}

func parseRepeat(raw interface{}) (float64, error) {
	if s, ok := raw.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "inf", "infinite", "forever":
			return math.Inf(1), nil
		}
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: repeat %v", ErrInvalidValue, raw)
	}
	return v, nil
}

// Options are the timing of every attrimator in a definition. The plural maps
// override a single option for one attribute.
type Options struct {
	Duration  *Millis     `yaml:"duration"`
	Delay     *Millis     `yaml:"delay"`
	Sleep     *Millis     `yaml:"sleep"`
	Offset    *Millis     `yaml:"offset"`
	Repeat    *Repeat     `yaml:"repeat"`
	Scale     *float64    `yaml:"scale"`
	Easing    interface{} `yaml:"easing"`
	ScaleBase interface{} `yaml:"scaleBase"`

	Durations  map[string]Millis      `yaml:"durations"`
	Delays     map[string]Millis      `yaml:"delays"`
	Sleeps     map[string]Millis      `yaml:"sleeps"`
	Offsets    map[string]Millis      `yaml:"offsets"`
	Repeats    map[string]Repeat      `yaml:"repeats"`
	Scales     map[string]float64     `yaml:"scales"`
	Easings    map[string]interface{} `yaml:"easings"`
	ScaleBases map[string]interface{} `yaml:"scaleBases"`
}

func (o *Options) duration(attr string) float64 {
	if v, ok := o.Durations[attr]; ok {
		return float64(v)
	}
	if o.Duration != nil {
		return float64(*o.Duration)
	}
	return attrimator.DefaultDuration
}

func (o *Options) delay(attr string) float64 {
	if v, ok := o.Delays[attr]; ok {
		return float64(v)
	}
	if o.Delay != nil {
		return float64(*o.Delay)
	}
	return 0
}

func (o *Options) sleep(attr string) float64 {
	if v, ok := o.Sleeps[attr]; ok {
		return float64(v)
	}
	if o.Sleep != nil {
		return float64(*o.Sleep)
	}
	return 0
}

func (o *Options) offset(attr string) float64 {
	if v, ok := o.Offsets[attr]; ok {
		return float64(v)
	}
	if o.Offset != nil {
		return float64(*o.Offset)
	}
	return 0
}

func (o *Options) repeat(attr string) float64 {
	if v, ok := o.Repeats[attr]; ok {
		return float64(v)
	}
	if o.Repeat != nil {
		return float64(*o.Repeat)
	}
	return 1
}

func (o *Options) scale(attr string) float64 {
	if v, ok := o.Scales[attr]; ok {
		return v
	}
	if o.Scale != nil {
		return *o.Scale
	}
	return 1
}

func (o *Options) scaleBase(attr string) interface{} {
	if v, ok := o.ScaleBases[attr]; ok {
		return v
	}
	return o.ScaleBase
}

func (o *Options) easing(attr string, easings *easing.Registry) (easing.Func, error) {
	if easings == nil {
		easings = easing.NewRegistry()
	}
	if v, ok := o.Easings[attr]; ok {
		return easings.Parse(v)
	}
	return easings.Parse(o.Easing)
}

// Timing resolves the timing of attr.
func (o *Options) Timing(attr string, easings *easing.Registry) (attrimator.Timing, error) {
	f, err := o.easing(attr, easings)
	if err != nil {
		return attrimator.Timing{}, err
	}
	return attrimator.Timing{
		Delay:           o.delay(attr),
		Duration:        o.duration(attr),
		Sleep:           o.sleep(attr),
		Offset:          o.offset(attr),
		Repeat:          o.repeat(attr),
		Scale:           o.scale(attr),
		Easing:          f,
		HasInitialState: true,
	}, nil
}
