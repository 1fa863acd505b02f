package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// randomPolynomial returns a canonical polynomial of exactly `length`
// coefficients, deterministic in the seed.
func randomPolynomial(f *PrimeField, seed int64, length int) *Poly[uint64] {
	rng := rand.New(rand.NewSource(seed))

	coeffs := make([]uint64, length)
	for i := range coeffs {
		coeffs[i] = rng.Uint64() % f.Modulus()
	}

	if coeffs[length-1] == 0 {
		coeffs[length-1] = 1
	}

	return NewPoly(f, coeffs)
}

func TestPolyAdd(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	t.Run("sameSize", func(t *testing.T) {
		slice := []uint64{1, 2, 0, 3}

		p1 := NewPoly(f, slice)
		p2 := NewPoly(f, append([]uint64{}, slice...))

		a.Equal([]uint64{2, 4, 0, 6}, p1.Add(p2).Coeffs())
	})

	t.Run("differentSizes", func(t *testing.T) {
		p1 := NewPoly(f, []uint64{1, 2, 0, 3})
		p2 := NewPoly(f, []uint64{1, 2, 0})

		a.Equal([]uint64{2, 4, 0, 3}, p1.Add(p2).Coeffs())
		a.Equal([]uint64{2, 4, 0, 3}, p2.Add(p1).Coeffs())
	})

	t.Run("wrapAroundCancels", func(t *testing.T) {
		q := f.Modulus() - 1

		p1 := NewPoly(f, []uint64{q, q, q, q})
		p2 := NewPoly(f, []uint64{1, 1, 1, 1})

		sum := p1.Add(p2)
		a.True(sum.IsZero())
		a.Equal([]uint64{0}, sum.Coeffs())
	})

	t.Run("associativeCommutativeIdentity", func(t *testing.T) {
		p1 := randomPolynomial(f, 1, 9)
		p2 := randomPolynomial(f, 2, 4)
		p3 := randomPolynomial(f, 3, 14)

		a.True(p1.Add(p2).Add(p3).Equal(p1.Add(p2.Add(p3))))
		a.True(p1.Add(p2).Equal(p2.Add(p1)))
		a.True(p1.Add(Zero[uint64](f)).Equal(p1))
	})
}

func TestPolySub(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	t.Run("selfIsZero", func(t *testing.T) {
		p1 := NewPoly(f, []uint64{1, 2, 0, 3})
		p2 := p1.Copy()

		a.Equal([]uint64{0}, p1.Sub(p2).Coeffs())
	})

	t.Run("differentSizes", func(t *testing.T) {
		p1 := NewPoly(f, []uint64{1, 2, 0, 3})
		p2 := NewPoly(f, []uint64{1, 2, 0})

		a.Equal([]uint64{0, 0, 0, 3}, p1.Sub(p2).Coeffs())
		a.Equal([]uint64{0, 0, 0, 154}, p2.Sub(p1).Coeffs())
	})
}

func TestScalarOps(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	t.Run("mulScalar", func(t *testing.T) {
		p := NewPoly(f, []uint64{1, 2, 3})
		a.Equal([]uint64{2, 4, 6}, p.MulScalar(2).Coeffs())
	})

	t.Run("mulScalarZeroCanonicalizes", func(t *testing.T) {
		p := NewPoly(f, []uint64{1, 2, 3})
		a.Equal([]uint64{0}, p.MulScalar(0).Coeffs())
	})

	t.Run("divScalarRoundTrip", func(t *testing.T) {
		p := randomPolynomial(f, 7, 12)

		q, err := p.MulScalar(11).DivScalar(11)
		a.NoError(err)
		a.True(p.Equal(q))
	})

	t.Run("divScalarByZero", func(t *testing.T) {
		p := randomPolynomial(f, 8, 5)

		_, err := p.DivScalar(0)
		a.ErrorIs(err, ErrZeroScalar)
	})
}

func TestEval(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	// 3x^2 + 2x + 1 at x=2
	p := NewPoly(f, []uint64{1, 2, 3})
	a.Equal(uint64(17), p.Eval(2))

	a.Equal(uint64(0), Zero[uint64](f).Eval(42))
}

func TestDerivative(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	t.Run("quadratic", func(t *testing.T) {
		// (3x^2 + 3x + 5)' = 6x + 3
		p := NewPoly(f, []uint64{5, 3, 3})
		a.Equal([]uint64{3, 6}, p.Derivative().Coeffs())
	})

	t.Run("constant", func(t *testing.T) {
		p := NewPoly(f, []uint64{5})
		a.True(p.Derivative().IsZero())
	})

	t.Run("characteristicKillsTerms", func(t *testing.T) {
		f5, err := NewPrimeField(5)
		a.NoError(err)

		// (x^5 + x)' = 5x^4 + 1 = 1 over GF(5)
		p := NewPoly(f5, []uint64{0, 1, 0, 0, 0, 1})
		a.Equal([]uint64{1}, p.Derivative().Coeffs())
	})
}

func TestTrunc(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	p := NewPoly(f, []uint64{1, 0, 3, 0, 5})

	t.Run("zeroWidthIsZeroPolynomial", func(t *testing.T) {
		a.Equal([]uint64{0}, p.Trunc(0).Coeffs())
	})

	t.Run("cutCanonicalizes", func(t *testing.T) {
		// dropping x^4 leaves a trailing zero to trim.
		a.Equal([]uint64{1, 0, 3}, p.Trunc(4).Coeffs())
	})

	t.Run("neverGrows", func(t *testing.T) {
		a.Equal([]uint64{1, 0, 3, 0, 5}, p.Trunc(9).Coeffs())
		a.Equal([]uint64{1, 0, 3, 0, 5}, p.Trunc(5).Coeffs())
	})

	t.Run("truncDoesNotAlias", func(t *testing.T) {
		cpy := p.Trunc(9)
		cut := cpy.Trunc(2)

		a.Equal([]uint64{1}, cut.Coeffs())
		a.Equal([]uint64{1, 0, 3, 0, 5}, cpy.Coeffs())
	})
}

func TestEffLen(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	a.Equal(0, Zero[uint64](f).EffLen())
	a.Equal(1, NewPoly(f, []uint64{7}).EffLen())
	a.Equal(4, NewPoly(f, []uint64{1, 2, 0, 3}).EffLen())

	// construction does not canonicalize; length 2 stays length 2.
	a.Equal(2, NewPoly(f, []uint64{1, 0}).EffLen())
}

func TestCanonicalForm(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	p1 := NewPoly(f, []uint64{1, 2, 3})
	p2 := NewPoly(f, []uint64{0, 0, 154})

	// the x^2 terms cancel: 3 + 154 = 0 (mod 157).
	sum := p1.Add(p2)
	a.Equal([]uint64{1, 2}, sum.Coeffs())

	prod, err := p1.Mul(Zero[uint64](f))
	a.NoError(err)
	a.Equal([]uint64{0}, prod.Coeffs())
}

func TestString(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(157)
	a.NoError(err)

	a.Equal("3*x^2 + 2*x + 1", NewPoly(f, []uint64{1, 2, 3}).String())
	a.Equal("5", NewPoly(f, []uint64{5}).String())
	a.Equal("0", Zero[uint64](f).String())

	// zero coefficients are rendered, and the separator always precedes
	// the constant term.
	a.Equal("1*x + 0", NewPoly(f, []uint64{0, 1}).String())
	a.Equal("2*x^2 + 0*x + 1", NewPoly(f, []uint64{1, 0, 2}).String())
}
