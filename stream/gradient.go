package stream

import (
	"errors"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrGradientOrder = errors.New("gradient stops must be in ascending position order")

// Stop pins a hue to a position between 0 and 1 along the strip.
type Stop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// Gradient is a list of hue stops. Hues between stops are interpolated
// linearly and positions outside the stops take the nearest end.
type Gradient []Stop

func (g Gradient) Validate() error {
	if !sort.SliceIsSorted(g, func(i, j int) bool { return g[i].Pos < g[j].Pos }) {
		return ErrGradientOrder
	}
	return nil
}

// Hue returns the hue at pos. An empty gradient is red everywhere.
func (g Gradient) Hue(pos float64) float64 {
	if len(g) == 0 {
		return 0
	}
	// first stop strictly past pos
	i := sort.Search(len(g), func(i int) bool { return g[i].Pos > pos })
	switch {
	case i == 0:
		return g[0].Hue
	case i == len(g):
		return g[len(g)-1].Hue
	}
	from, to := g[i-1], g[i]
	return from.Hue + (to.Hue-from.Hue)*(pos-from.Pos)/(to.Pos-from.Pos)
}

// Color is the HCL colour at pos with the given chroma and luminance.
func (g Gradient) Color(pos, chroma, luminance float64) colorful.Color {
	return colorful.Hcl(g.Hue(pos), chroma, luminance)
}
