package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// randomComplexPolynomial keeps coefficients small non-negative integers
// so FFT rounding stays far below the comparison tolerance.
func randomComplexPolynomial(f *ComplexField, seed int64, length int) *Poly[complex128] {
	rng := rand.New(rand.NewSource(seed))

	coeffs := make([]complex128, length)
	for i := range coeffs {
		coeffs[i] = complex(float64(rng.Intn(10)), 0)
	}

	coeffs[length-1] = complex(float64(rng.Intn(9)+1), 0)

	return NewPoly[complex128](f, coeffs)
}

func TestComplexFieldOps(t *testing.T) {
	a := assert.New(t)

	f := NewComplexField()

	a.Equal(complex(3, 0), f.FromInt(3))
	a.True(f.Equals(complex(1, 0), f.Mul(complex(0, 2), f.Inverse(complex(0, 2)))))
	a.True(f.IsZero(complex(1e-12, -1e-12)))
	a.False(f.IsZero(complex(1e-3, 0)))
	a.True(f.Equals(complex(1, 1), complex(1+1e-12, 1)))

	a.Panics(func() { f.Inverse(0) })
}

func TestComplexConvolve(t *testing.T) {
	a := assert.New(t)

	f := NewComplexField()

	// (5+3x+7x^2)(7+2x+x^2) = 35 + 31x + 60x^2 + 17x^3 + 7x^4
	conv, err := f.Convolve(
		[]complex128{5, 3, 7},
		[]complex128{7, 2, 1},
	)
	a.NoError(err)

	want := []complex128{35, 31, 60, 17, 7}
	a.Len(conv, len(want))
	for i := range want {
		a.True(f.Equals(want[i], conv[i]), "coefficient %d", i)
	}
}

func TestComplexMulPathEquivalence(t *testing.T) {
	a := assert.New(t)

	f := NewComplexField()

	// one product on each side of the dispatch threshold.
	for i, sizes := range [][2]int{{100, 101}, {150, 150}} {
		p1 := randomComplexPolynomial(f, int64(1+i), sizes[0])
		p2 := randomComplexPolynomial(f, int64(10+i), sizes[1])

		prod, err := p1.Mul(p2)
		a.NoError(err)

		direct := &Poly[complex128]{f: f, coeffs: mulSchoolbook[complex128](f, p1.Coeffs(), p2.Coeffs())}
		direct.trim()

		a.True(prod.Equal(direct))
	}
}

func TestComplexDivisionIdentity(t *testing.T) {
	a := assert.New(t)

	f := NewComplexFieldWithTolerance(1e-6)

	p := randomComplexPolynomial(f, 3, 7)
	g := NewPoly[complex128](f, []complex128{1, 1}) // x + 1

	q, r, err := p.DivMod(g)
	a.NoError(err)

	gq, err := g.Mul(q)
	a.NoError(err)

	a.True(p.Equal(gq.Add(r)))
	a.Less(r.EffLen(), g.EffLen())
}
