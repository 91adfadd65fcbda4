package stream

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxPixels is the most pixels the two byte frame header can count.
const MaxPixels = math.MaxUint16

var ErrTooManyPixels = errors.New("too many pixels for a frame")

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a new Frame instance.
func NewFrame(numPixels int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

func (f *Frame) Len() int { return len(f.pixels) }

func (f *Frame) Pixel(i int) colorful.Color { return f.pixels[i] }

func (f *Frame) SetPixel(i int, c colorful.Color) { f.pixels[i] = c }

// MarshalBinary converts a Frame into a little endian pixel count followed by
// three bytes per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > MaxPixels {
		return nil, ErrTooManyPixels
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// MarshalJSON writes the pixels as hex colours.
func (f *Frame) MarshalJSON() ([]byte, error) {
	hex := make([]string, len(f.pixels))
	for i, p := range f.pixels {
		hex[i] = p.Clamped().Hex()
	}
	return json.Marshal(hex)
}
