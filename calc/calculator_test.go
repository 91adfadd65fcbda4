package calc

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 0.000001

// conformance runs the shared checks every Calculator must pass.
func conformance[T any](t *testing.T, c Calculator[T], a, b T) {
	t.Run(c.Name(), func(t *testing.T) {
		assert.True(t, c.IsZero(c.Create(), epsilon))
		assert.True(t, c.IsEqual(c.Create(), c.Zero(), epsilon))
		assert.True(t, c.IsEqual(c.Add(a, c.Create()), a, epsilon))

		for _, d := range []float64{0, 0.25, 0.5, 1, 1.5, -0.5} {
			assert.True(t, c.IsEqual(c.Interpolate(a, a, d), a, epsilon), "identity interpolation at %v", d)
		}
		assert.True(t, c.IsEqual(c.Interpolate(a, b, 0), a, epsilon))
		assert.True(t, c.IsEqual(c.Interpolate(a, b, 1), b, epsilon))

		mid := c.Interpolate(a, b, 0.5)
		assert.InDelta(t, c.Distance(a, mid), c.Distance(mid, b), epsilon)
		assert.InDelta(t, c.Distance(a, b)*c.Distance(a, b), c.DistanceSq(a, b), epsilon)

		assert.True(t, c.IsEqual(c.Sub(c.Add(a, b), b), a, epsilon))
		assert.True(t, c.IsEqual(c.Adds(a, b, 2), c.Add(a, c.Scale(b, 2)), epsilon))
		assert.True(t, c.IsEqual(c.Mul(a, c.One()), a, epsilon))
		assert.False(t, c.IsNaN(a))

		for i := 0; i < c.Dimensions(); i++ {
			assert.True(t, math.IsInf(c.Component(c.Infinity(), i), 1))
			assert.Equal(t, 1.0, c.Component(c.One(), i))
		}

		parsed, ok := c.Parse(a, b)
		require.True(t, ok)
		assert.Equal(t, KindLiteral, parsed.Kind)
		assert.True(t, c.IsEqual(parsed.Value, a, epsilon))

		def, ok := c.Parse(nil, b)
		require.True(t, ok)
		assert.True(t, c.IsEqual(def.Value, b, epsilon))

		current, ok := c.Parse(true, b)
		require.True(t, ok)
		assert.Equal(t, KindCurrent, current.Kind)
		assert.True(t, c.IsEqual(current.Resolve(c, a), a, epsilon))

		_, ok = c.Parse(false, b)
		assert.False(t, ok)
		_, ok = c.Parse("not a value", b)
		assert.False(t, ok)
	})
}

func TestConformance(t *testing.T) {
	conformance(t, Number(), 3.5, -10.0)
	conformance(t, Point2(), Vec2{1, 2}, Vec2{-4, 8})
	conformance(t, Point3(), Vec3{1, 2, 3}, Vec3{9, -1, 0.5})
	conformance(t, Quat(), Quaternion{0, 1, 0, 1.2}, Quaternion{1, 0, 0, -0.4})
	conformance(t, Color(), RGB{255, 0, 10}, RGB{0, 128, 255})
	conformance(t, ColorAlpha(), RGBA{255, 0, 10, 1}, RGBA{0, 128, 255, 0.5})
}

func TestParseBroadcast(t *testing.T) {
	v, ok := Point2().Parse(4, Vec2{})
	require.True(t, ok)
	assert.Equal(t, Vec2{4, 4}, v.Value)

	q, ok := Quat().Parse(90, Quaternion{})
	require.True(t, ok)
	assert.Equal(t, Quaternion{Z: 1, Angle: 90}, q.Value)

	a, ok := ColorAlpha().Parse(10, RGBA{})
	require.True(t, ok)
	assert.Equal(t, RGBA{10, 10, 10, 1}, a.Value)
}

func TestParseRelative(t *testing.T) {
	c := Number()

	v, ok := c.Parse("+10", 0)
	require.True(t, ok)
	assert.Equal(t, KindRelative, v.Kind)
	assert.InDelta(t, 15.0, v.Resolve(c, 5), epsilon)

	v, ok = c.Parse("-2.5", 0)
	require.True(t, ok)
	assert.InDelta(t, 2.5, v.Resolve(c, 5), epsilon)

	p := Point2()
	v2, ok := p.Parse(map[string]any{"x": "+5", "y": 3}, Vec2{})
	require.True(t, ok)
	assert.Equal(t, KindRelative, v2.Kind)
	assert.Equal(t, Vec2{1, 0}, v2.Mask)
	assert.Equal(t, Vec2{15, 3}, v2.Resolve(p, Vec2{10, 10}))

	v2, ok = p.Parse("+1 -1", Vec2{})
	require.True(t, ok)
	assert.Equal(t, Vec2{2, 1}, v2.Resolve(p, Vec2{1, 2}))

	q := Quat()
	qv, ok := q.Parse("+45", Quaternion{})
	require.True(t, ok)
	assert.Equal(t, Quaternion{0, 0, 1, 135}, qv.Resolve(q, Quaternion{0, 0, 1, 90}))
}

func TestParseComponents(t *testing.T) {
	p := Point3()

	v, ok := p.Parse([]any{1, 2, 3}, Vec3{})
	require.True(t, ok)
	assert.Equal(t, Vec3{1, 2, 3}, v.Value)

	v, ok = p.Parse(map[any]any{"x": 7}, Vec3{1, 1, 1})
	require.True(t, ok)
	assert.Equal(t, Vec3{7, 1, 1}, v.Value)

	v, ok = p.Parse("4, 5, 6", Vec3{})
	require.True(t, ok)
	assert.Equal(t, Vec3{4, 5, 6}, v.Value)

	_, ok = p.Parse([]any{1, 2, 3, 4}, Vec3{})
	assert.False(t, ok)

	_, ok = p.Parse(map[string]any{"w": 1}, Vec3{})
	assert.False(t, ok)
}

func TestParseColours(t *testing.T) {
	c := Color()

	v, ok := c.Parse("#ff0080", RGB{})
	require.True(t, ok)
	assert.InDelta(t, 255.0, v.Value.R, 0.5)
	assert.InDelta(t, 0.0, v.Value.G, 0.5)
	assert.InDelta(t, 128.0, v.Value.B, 0.5)
	assert.Equal(t, "#ff0080", v.Value.Hex())

	v, ok = c.Parse(colorful.Color{R: 1, G: 1, B: 1}, RGB{})
	require.True(t, ok)
	assert.Equal(t, RGB{255, 255, 255}, v.Value)

	a, ok := ColorAlpha().Parse(RGB{1, 2, 3}, RGBA{})
	require.True(t, ok)
	assert.Equal(t, RGBA{1, 2, 3, 1}, a.Value)
}

func TestClamp(t *testing.T) {
	p := Point2()

	assert.Equal(t, Vec2{3, 4}, p.Clamp(Vec2{3, 4}, 0, 10))
	clamped := p.Clamp(Vec2{6, 8}, 0, 5)
	assert.InDelta(t, 5.0, p.Length(clamped), epsilon)
	assert.InDelta(t, 3.0, clamped.X, epsilon)
	assert.Equal(t, Vec2{}, p.Clamp(Vec2{}, 1, 5))
}

func TestEpsilonComparisons(t *testing.T) {
	c := Number()

	assert.True(t, c.IsZero(0.00005, 0.0001))
	assert.False(t, c.IsZero(0.00005, 0.00001))
	assert.True(t, c.IsEqual(1, 1.05, 0.1))
	assert.False(t, c.IsEqual(1, 1.05, 0.01))
	assert.True(t, c.IsNaN(math.NaN()))
	assert.Equal(t, 1.0, c.Min(1, 2))
	assert.Equal(t, 2.0, c.Max(1, 2))
}

func TestParseOr(t *testing.T) {
	c := Number()

	assert.Equal(t, 5.0, ParseOr(c, "junk", 5).Value)
	assert.Equal(t, 2.0, ParseOr(c, "2", 5).Value)
}
