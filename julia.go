// Package julia evaluates the Julia set of a² + C pixel by pixel.
package julia

import "image/color"

const (
	Dim           = 1000 // width and height of the rendered image
	Scale         = 1.5  // half extent of the viewed complex plane
	MaxIter       = 200
	EscapeRadius2 = 1000 // squared magnitude beyond which a point escapes
)

// C is the constant of the quadratic map a ← a² + C.
var C = Complex{R: -0.8, I: 0.156}

// Complex is a single precision complex value.
// Every arithmetic step is rounded to float32 on its own; the explicit
// conversions keep the compiler from fusing multiply and add.
type Complex struct {
	R, I float32
}

func (a Complex) Mul(b Complex) Complex {
	return Complex{
		R: float32(a.R*b.R) - float32(a.I*b.I),
		I: float32(a.I*b.R) + float32(a.R*b.I),
	}
}

func (a Complex) Add(b Complex) Complex {
	return Complex{R: a.R + b.R, I: a.I + b.I}
}

// Magnitude2 returns r² + i².
func (a Complex) Magnitude2() float32 {
	return float32(a.R*a.R) + float32(a.I*a.I)
}

// Point maps pixel (x, y) of the Dim×Dim image to the complex plane,
// centered at the image midpoint.
func Point(x, y int) Complex {
	const half = Dim / 2
	return Complex{
		R: Scale * float32(half-x) / half,
		I: Scale * float32(half-y) / half,
	}
}

// EscapeTime iterates a ← a² + C starting from a.
// It returns the number of iterations performed and whether the orbit
// stayed bounded for all MaxIter of them.
func EscapeTime(a Complex) (iter int, bounded bool) {
	for i := 0; i < MaxIter; i++ {
		a = a.Mul(a).Add(C)
		if a.Magnitude2() > EscapeRadius2 {
			return i + 1, false
		}
	}
	return MaxIter, true
}

// Julia returns 1 if pixel (x, y) belongs to the Julia set, 0 otherwise.
func Julia(x, y int) int {
	if _, bounded := EscapeTime(Point(x, y)); bounded {
		return 1
	}
	return 0
}

// Color maps a membership flag to the pixel color stored in the buffer.
func Color(flag int) color.RGBA {
	return color.RGBA{R: uint8(255 * flag), A: 255}
}
