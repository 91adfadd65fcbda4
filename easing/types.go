package easing

// A Type reshapes an easing, for example playing it backwards or bouncing it
// back and forth.
type Type func(f Func) Func

// In leaves the easing as it is.
func In(f Func) Func {
	return f
}

// Out plays the easing backwards from the end.
func Out(f Func) Func {
	return func(x float64) float64 {
		return 1.0 - f(1.0-x)
	}
}

// InOut plays the easing in for the first half and out for the second.
func InOut(f Func) Func {
	return func(x float64) float64 {
		if x < 0.5 {
			return f(2.0*x) * 0.5
		}
		return 1.0 - f(2.0-2.0*x)*0.5
	}
}

// Yoyo plays the easing to the end and back again.
func Yoyo(f Func) Func {
	return func(x float64) float64 {
		if x < 0.5 {
			return f(2.0 * x)
		}
		return f(2.0 - 2.0*x)
	}
}

// Mirror plays the easing to the end then mirrored back.
func Mirror(f Func) Func {
	return func(x float64) float64 {
		if x < 0.5 {
			return f(2.0 * x)
		}
		return 1.0 - f(2.0-2.0*x)
	}
}

func Reverse(f Func) Func {
	return func(x float64) float64 {
		return f(1.0 - x)
	}
}

func Flip(f Func) Func {
	return func(x float64) float64 {
		return 1.0 - f(x)
	}
}
