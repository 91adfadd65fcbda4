package easing

import (
	"math"
)

// A Func maps linear progress in [0, 1] to eased progress.
type Func func(x float64) float64

// Linear does not ease.
func Linear(x float64) float64 {
	return x
}

// Quad accelerates quadratically.
func Quad(x float64) float64 {
	return x * x
}

// Ease is the default easing, a gentle acceleration with a soft landing.
func Ease(x float64) float64 {
	i := 1.0 - x
	i2 := i * i
	x2 := x * x
	eq1 := (0.3 * i2 * x) + (3.0 * i * x2) + (x2 * x)
	eq2 := 1.0 - i2*i2
	return eq1*i + eq2*x
}

func Cubic(x float64) float64 {
	return x * x * x
}

func Quartic(x float64) float64 {
	x2 := x * x
	return x2 * x2
}

func Quintic(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}

// Back dips below zero before accelerating.
func Back(x float64) float64 {
	x2 := x * x
	return x2*x + x2 - x
}

func Sine(x float64) float64 {
	return math.Sin(x * math.Pi / 2)
}

// Overshot passes the target and settles back.
func Overshot(x float64) float64 {
	return (1.0 - x*(7.0/10)) * x * (10.0 / 3.0)
}

func Elastic(x float64) float64 {
	x2 := x * x
	x3 := x2 * x
	scale := x2 * ((2.0 * x3) + x2 - (4.0 * x) + 2.0)
	wave := -math.Sin(x * 3.5 * math.Pi)
	return scale * wave
}

func Revisit(x float64) float64 {
	return math.Abs(x - math.Sin(x*math.Pi))
}

func Lasso(x float64) float64 {
	return 1.0 - math.Cos(x*x*x*36.0)*(1.0-x)
}

func SlowBounce(x float64) float64 {
	x2 := x * x
	return 1.0 - math.Abs((1.0-x2)*math.Cos(x2*x*14.8044066016))
}

func Bounce(x float64) float64 {
	return 1.0 - math.Abs((1.0-x)*math.Cos(x*x*14.8044066016))
}

func SmallBounce(x float64) float64 {
	inv := 1.0 - x
	return 1.0 - math.Abs(inv*inv*math.Cos(x*x*14.8044066016))
}

func TinyBounce(x float64) float64 {
	inv := 1.0 - x
	return 1.0 - math.Abs(inv*inv*math.Cos(x*x*7.0))
}

func Hesitant(x float64) float64 {
	return math.Cos(x*x*12.0)*x*(1.0-x) + x
}

func Sqrt(x float64) float64 {
	return math.Sqrt(x)
}

func Sqrtf(x float64) float64 {
	i := 1.0 - x
	i2 := i * i
	return ((1.0 - i2*i2) + x) * 0.5
}

func Log10(x float64) float64 {
	return (math.Log10(x+0.01) + 2.0) * 0.5 / 1.0021606868913213
}

// Slingshot pulls back before launching.
func Slingshot(x float64) float64 {
	if x < 0.7 {
		return x * -0.357
	}
	d := x - 0.7
	return (d*d*27.5 - 0.5) * 0.5
}

func Circular(x float64) float64 {
	return 1.0 - math.Sqrt(1-x*x)
}

func Gentle(x float64) float64 {
	return (3.0 * (1.0 - x) * x * x) + (x * x * x)
}

// Bezier creates a cubic-bezier easing with control points (x1, y1) and (x2, y2),
// solving for x with Newton iteration.
func Bezier(x1, y1, x2, y2 float64) Func {
	a := func(a1, a2 float64) float64 { return 1.0 - 3.0*a2 + 3.0*a1 }
	b := func(a1, a2 float64) float64 { return 3.0*a2 - 6.0*a1 }
	c := func(a1 float64) float64 { return 3.0 * a1 }
	calc := func(t, a1, a2 float64) float64 {
		return ((a(a1, a2)*t+b(a1, a2))*t + c(a1)) * t
	}
	slope := func(t, a1, a2 float64) float64 {
		return 3.0*a(a1, a2)*t*t + 2.0*b(a1, a2)*t + c(a1)
	}

	return func(x float64) float64 {
		t := x
		for i := 0; i < 4; i++ {
			s := slope(t, x1, x2)
			if s == 0 {
				break
			}
			t -= (calc(t, x1, x2) - x) / s
		}
		return calc(t, y1, y2)
	}
}
