package field

import (
	"math"
	"math/cmplx"
)

// DefaultTolerance is the comparison slack of a ComplexField built with
// NewComplexField. Floating transforms round; two values closer than the
// tolerance count as equal, and magnitudes below it count as zero.
const DefaultTolerance = 1e-9

// ComplexField is the approximate complex128 coefficient field. Its
// fast-multiply transform is a radix-2 FFT, so products of large
// polynomials carry rounding error bounded by the usual FFT analysis.
type ComplexField struct {
	tol float64
}

func NewComplexField() *ComplexField {
	return &ComplexField{tol: DefaultTolerance}
}

func NewComplexFieldWithTolerance(tol float64) *ComplexField {
	return &ComplexField{tol: tol}
}

func (f *ComplexField) Tolerance() float64 {
	return f.tol
}

func (f *ComplexField) Add(a, b complex128) complex128 {
	return a + b
}

func (f *ComplexField) Sub(a, b complex128) complex128 {
	return a - b
}

func (f *ComplexField) Mul(a, b complex128) complex128 {
	return a * b
}

func (f *ComplexField) Neg(a complex128) complex128 {
	return -a
}

func (f *ComplexField) Inverse(a complex128) complex128 {
	if a == 0 {
		panic("zero has no inverse")
	}

	return 1 / a
}

func (f *ComplexField) IsZero(a complex128) bool {
	return cmplx.Abs(a) <= f.tol
}

func (f *ComplexField) Equals(a, b complex128) bool {
	return cmplx.Abs(a-b) <= f.tol
}

func (f *ComplexField) FromInt(n int) complex128 {
	return complex(float64(n), 0)
}

// Convolve multiplies the two coefficient sequences through a radix-2 FFT,
// same shape as the prime field's NTT with roots of unity on the complex
// unit circle. Never errors: every power of two has a complex root of unity.
func (f *ComplexField) Convolve(a, b []complex128) ([]complex128, error) {
	outLen := len(a) + len(b) - 1

	size := 1
	for size < outLen {
		size <<= 1
	}

	pa := make([]complex128, size)
	copy(pa, a)

	pb := make([]complex128, size)
	copy(pb, b)

	fftInPlace(pa, false)
	fftInPlace(pb, false)

	for i := range pa {
		pa[i] *= pb[i]
	}

	fftInPlace(pa, true)

	return pa[:outLen], nil
}

// fftInPlace transforms xs in place; len(xs) must be a power of two.
// The inverse transform includes the 1/n scaling.
func fftInPlace(xs []complex128, invert bool) {
	n := len(xs)
	if n <= 1 {
		return
	}

	bitReverseInPlace(xs)

	for m := 2; m <= n; m <<= 1 {
		ang := 2 * math.Pi / float64(m)
		if invert {
			ang = -ang
		}

		wm := cmplx.Exp(complex(0, ang))
		half := m >> 1

		for k := 0; k < n; k += m {
			w := complex(1, 0)
			for j := 0; j < half; j++ {
				u := xs[k+j]
				t := w * xs[k+j+half]
				xs[k+j] = u + t
				xs[k+j+half] = u - t
				w *= wm
			}
		}
	}

	if invert {
		scale := complex(float64(n), 0)
		for i := range xs {
			xs[i] /= scale
		}
	}
}
