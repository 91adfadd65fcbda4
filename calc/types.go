package calc

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Vec2 is a 2D point.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D point.
type Vec3 struct {
	X, Y, Z float64
}

// Quaternion is a rotation of Angle radians about the axis (X, Y, Z).
type Quaternion struct {
	X, Y, Z, Angle float64
}

// RGB is a colour with components in [0, 255].
type RGB struct {
	R, G, B float64
}

// RGBA is a colour with components in [0, 255] and an alpha in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Colorful converts the colour for blending and output.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// Hex returns the clamped colour as a hex string.
func (c RGB) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// Colorful converts the colour ignoring alpha.
func (c RGBA) Colorful() colorful.Color {
	return RGB{c.R, c.G, c.B}.Colorful()
}

// FromColorful creates an RGB from a colorful.Color.
func FromColorful(c colorful.Color) RGB {
	return RGB{R: c.R * 255, G: c.G * 255, B: c.B * 255}
}

var (
	numberCalc = newVector(layout[float64]{
		name:      "number",
		fields:    []string{"value"},
		get:       func(v float64, i int) float64 { return v },
		set:       func(v float64, i int, x float64) float64 { return x },
		broadcast: func(x float64) float64 { return x },
	})

	point2Calc = newVector(layout[Vec2]{
		name:   "2d",
		fields: []string{"x", "y"},
		get: func(v Vec2, i int) float64 {
			if i == 0 {
				return v.X
			}
			return v.Y
		},
		set: func(v Vec2, i int, x float64) Vec2 {
			if i == 0 {
				v.X = x
			} else {
				v.Y = x
			}
			return v
		},
		broadcast: func(x float64) Vec2 { return Vec2{x, x} },
	})

	point3Calc = newVector(layout[Vec3]{
		name:   "3d",
		fields: []string{"x", "y", "z"},
		get: func(v Vec3, i int) float64 {
			return [3]float64{v.X, v.Y, v.Z}[i]
		},
		set: func(v Vec3, i int, x float64) Vec3 {
			switch i {
			case 0:
				v.X = x
			case 1:
				v.Y = x
			default:
				v.Z = x
			}
			return v
		},
		broadcast: func(x float64) Vec3 { return Vec3{x, x, x} },
	})

	quaternionCalc = newVector(layout[Quaternion]{
		name:   "quaternion",
		fields: []string{"x", "y", "z", "angle"},
		get: func(v Quaternion, i int) float64 {
			return [4]float64{v.X, v.Y, v.Z, v.Angle}[i]
		},
		set: func(v Quaternion, i int, x float64) Quaternion {
			switch i {
			case 0:
				v.X = x
			case 1:
				v.Y = x
			case 2:
				v.Z = x
			default:
				v.Angle = x
			}
			return v
		},
		// A bare number is a rotation about the Z axis.
		broadcast: func(x float64) Quaternion { return Quaternion{Z: 1, Angle: x} },
		relative:  func(x float64) Quaternion { return Quaternion{Angle: x} },
	})

	rgbCalc = newVector(layout[RGB]{
		name:   "rgb",
		fields: []string{"r", "g", "b"},
		get: func(v RGB, i int) float64 {
			return [3]float64{v.R, v.G, v.B}[i]
		},
		set: func(v RGB, i int, x float64) RGB {
			switch i {
			case 0:
				v.R = x
			case 1:
				v.G = x
			default:
				v.B = x
			}
			return v
		},
		broadcast: func(x float64) RGB { return RGB{x, x, x} },
		text: func(s string) (RGB, bool) {
			c, err := colorful.Hex(s)
			if err != nil {
				return RGB{}, false
			}
			return FromColorful(c), true
		},
		typed: func(raw any) (RGB, bool) {
			c, ok := raw.(colorful.Color)
			if !ok {
				return RGB{}, false
			}
			return FromColorful(c), true
		},
	})

	rgbaCalc = newVector(layout[RGBA]{
		name:   "rgba",
		fields: []string{"r", "g", "b", "a"},
		get: func(v RGBA, i int) float64 {
			return [4]float64{v.R, v.G, v.B, v.A}[i]
		},
		set: func(v RGBA, i int, x float64) RGBA {
			switch i {
			case 0:
				v.R = x
			case 1:
				v.G = x
			case 2:
				v.B = x
			default:
				v.A = x
			}
			return v
		},
		broadcast: func(x float64) RGBA { return RGBA{x, x, x, 1} },
		relative:  func(x float64) RGBA { return RGBA{x, x, x, 0} },
		text: func(s string) (RGBA, bool) {
			c, err := colorful.Hex(s)
			if err != nil {
				return RGBA{}, false
			}
			rgb := FromColorful(c)
			return RGBA{rgb.R, rgb.G, rgb.B, 1}, true
		},
		typed: func(raw any) (RGBA, bool) {
			switch c := raw.(type) {
			case colorful.Color:
				rgb := FromColorful(c)
				return RGBA{rgb.R, rgb.G, rgb.B, 1}, true
			case RGB:
				return RGBA{c.R, c.G, c.B, 1}, true
			}
			return RGBA{}, false
		},
	})
)

// Number returns the scalar Calculator.
func Number() Calculator[float64] { return numberCalc }

// Point2 returns the 2D point Calculator.
func Point2() Calculator[Vec2] { return point2Calc }

// Point3 returns the 3D point Calculator.
func Point3() Calculator[Vec3] { return point3Calc }

// Quat returns the quaternion Calculator.
func Quat() Calculator[Quaternion] { return quaternionCalc }

// Color returns the RGB Calculator.
func Color() Calculator[RGB] { return rgbCalc }

// ColorAlpha returns the RGBA Calculator.
func ColorAlpha() Calculator[RGBA] { return rgbaCalc }
