package stream

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/anim8/animator"
	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/calc"
)

// A Twinkler scintillates random idle pixels. Each step every pixel has a one in
// chance likelihood of playing the animation, and at the peak of the twinkle its
// colour swaps to a random one from the palette.
type Twinkler struct {
	strip     *Strip
	animation animator.Animation
	chance    int
	palette   []colorful.Color
	rand      *rand.Rand
}

// NewTwinkler creates an instance of a Twinkler.
func NewTwinkler(strip *Strip, animation animator.Animation, chance int, palette []colorful.Color, src rand.Source) *Twinkler {
	t := new(Twinkler)
	t.strip = strip
	t.animation = animation
	t.chance = chance
	t.palette = palette
	t.rand = rand.New(src)
	return t
}

func (t *Twinkler) getRandomBackColour() colorful.Color {
	return t.palette[t.rand.Intn(len(t.palette))]
}

func (t *Twinkler) busy(a *animator.Animator, m *attrimator.Map) bool {
	for _, attr := range m.Keys() {
		if a.Attrimators().Has(attr) {
			return true
		}
	}
	return false
}

// Step gives every pixel its chance to start twinkling and returns how many did.
func (t *Twinkler) Step() (int, error) {
	started := 0
	for _, a := range t.strip.Animators() {
		if t.chance > 1 && t.rand.Intn(t.chance) != 0 {
			continue
		}
		m, err := t.animation.Attrimators()
		if err != nil {
			return started, err
		}
		if t.busy(a, m) {
			continue
		}

		peak := m.TimeRemaining() / 2
		a.PlayAttrimators(m, false)
		started++

		if len(t.palette) == 0 || m.Has(ColorAttribute) || a.Attrimators().Has(ColorAttribute) {
			continue
		}
		c := calc.FromColorful(t.getRandomBackColour())
		swap := attrimator.Timing{Delay: peak, Repeat: 1, Scale: 1}
		if err = a.Tween(ColorAttribute, c, c, swap); err != nil {
			return started, err
		}
	}
	return started, nil
}

func newSource() rand.Source {
	return rand.NewSource(time.Now().UTC().UnixNano())
}

func parsePalette(hex []string) ([]colorful.Color, error) {
	palette := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}
