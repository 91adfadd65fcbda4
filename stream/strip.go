package stream

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/anim8/animator"
	"github.com/matt-g-everett/anim8/build"
	"github.com/matt-g-everett/anim8/calc"
	"github.com/matt-g-everett/anim8/subject"
	"github.com/sgostarter/i/l"
)

const (
	ColorAttribute      = "color"
	BrightnessAttribute = "brightness"
)

// PixelSchema describes the attributes of a pixel: an rgb colour and a
// brightness multiplier.
func PixelSchema() (*build.Schema, error) {
	color, err := build.NewAttribute(ColorAttribute, "rgb", "#000000")
	if err != nil {
		return nil, err
	}
	brightness, err := build.NewAttribute(BrightnessAttribute, "number", 1)
	if err != nil {
		return nil, err
	}
	return build.NewSchema(color, brightness), nil
}

// Strip is a row of pixels, each with its own animator.
type Strip struct {
	schema    *build.Schema
	pixels    []*subject.Object
	animators []*animator.Animator
}

// NewStrip creates an instance of a Strip with numPixels pixels animated by loop.
func NewStrip(numPixels int, schema *build.Schema, loop *animator.Loop, logger l.Wrapper) *Strip {
	s := new(Strip)
	s.schema = schema
	s.pixels = make([]*subject.Object, numPixels)
	s.animators = make([]*animator.Animator, numPixels)
	for i := range s.pixels {
		s.pixels[i] = subject.NewObject(schema, nil)
		s.animators[i] = animator.NewAnimator(s.pixels[i], loop, logger)
	}
	return s
}

func (s *Strip) Len() int { return len(s.pixels) }

func (s *Strip) Schema() *build.Schema { return s.schema }

func (s *Strip) Pixel(i int) *subject.Object { return s.pixels[i] }

func (s *Strip) Animator(i int) *animator.Animator { return s.animators[i] }

func (s *Strip) Animators() []*animator.Animator {
	return append([]*animator.Animator(nil), s.animators...)
}

// Paint sets every pixel to its colour along the gradient.
func (s *Strip) Paint(g Gradient, chroma, luminance float64) {
	if len(g) == 0 {
		return
	}
	for i, a := range s.animators {
		t := 0.0
		if len(s.animators) > 1 {
			t = float64(i) / float64(len(s.animators)-1)
		}
		c := g.Color(t, chroma, luminance)
		a.Set(map[string]any{ColorAttribute: calc.FromColorful(c)})
	}
}

// Frame renders the current colour of every pixel scaled by its brightness.
func (s *Strip) Frame() *Frame {
	f := NewFrame(len(s.pixels))
	for i, p := range s.pixels {
		c, _ := p.Color(ColorAttribute)
		b, ok := p.Number(BrightnessAttribute)
		if !ok {
			b = 1
		}
		f.SetPixel(i, colorful.Color{R: c.R * b, G: c.G * b, B: c.B * b})
	}
	return f
}
