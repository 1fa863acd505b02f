package field

import "errors"

var (
	ErrZeroDivisor           = errors.New("invalid divisor: zero polynomial")
	ErrUndersizedDividend    = errors.New("undersized dividend: effective length smaller than divisor's")
	ErrNonInvertibleConstant = errors.New("non-invertible constant term")
	ErrInvalidPrecision      = errors.New("precision must be at least 1")
	ErrZeroScalar            = errors.New("invalid scalar: zero has no inverse")
)

// Reciprocal computes R with R*p == 1 (mod x^n) by Newton iteration:
// starting from the inverse of the constant term, each step doubles the
// working size sz and refines R <- 2R - R*R*(p mod x^sz), correct to twice
// as many terms as before. Products go through the multiplication
// dispatcher, so the total cost is O(n log n).
//
// p's constant coefficient must be nonzero.
func (p *Poly[T]) Reciprocal(n int) (*Poly[T], error) {
	if n < 1 {
		return nil, ErrInvalidPrecision
	}

	f := p.f
	if f.IsZero(p.coeffs[0]) {
		return nil, ErrNonInvertibleConstant
	}

	r := &Poly[T]{f: f, coeffs: []T{f.Inverse(p.coeffs[0])}}
	two := f.FromInt(2)

	for sz := 1; sz < n; {
		sz *= 2

		rr, err := r.Mul(r)
		if err != nil {
			return nil, err
		}

		rrp, err := rr.Mul(p.Trunc(sz))
		if err != nil {
			return nil, err
		}

		r = r.MulScalar(two).Sub(rrp).Trunc(sz)
	}

	return r.Trunc(n), nil
}

// Div computes the quotient q with p = q*g + r, EffLen(r) < EffLen(g),
// via the reversal trick: with m = EffLen(p) - EffLen(g) + 1, the
// reversed quotient is rev(p) * rev(g)^-1 (mod x^m), which reduces exact
// division to one power-series reciprocal. O(n log n).
//
// g must be nonzero and EffLen(p) >= EffLen(g).
func (p *Poly[T]) Div(g *Poly[T]) (*Poly[T], error) {
	if g.IsZero() {
		return nil, ErrZeroDivisor
	}

	m := p.EffLen() - g.EffLen() + 1
	if m < 1 {
		return nil, ErrUndersizedDividend
	}

	inv, err := g.rev().Reciprocal(m)
	if err != nil {
		return nil, err
	}

	qrev, err := p.rev().Mul(inv)
	if err != nil {
		return nil, err
	}
	qrev = qrev.Trunc(m)

	// Un-reverse at fixed width m: the reversed quotient's trailing zeros
	// are the quotient's low-order zero coefficients and must come back.
	f := p.f
	out := make([]T, m)
	for i := range out {
		out[i] = f.FromInt(0)
	}
	for i, c := range qrev.coeffs {
		out[m-1-i] = c
	}

	q := &Poly[T]{f: f, coeffs: out}
	q.trim()

	return q, nil
}

// DivMod returns quotient and remainder. The remainder is p - g*q by
// full-precision subtraction; over a floating field that subtraction is
// where all the rounding error lands.
func (p *Poly[T]) DivMod(g *Poly[T]) (*Poly[T], *Poly[T], error) {
	q, err := p.Div(g)
	if err != nil {
		return nil, nil, err
	}

	gq, err := g.Mul(q)
	if err != nil {
		return nil, nil, err
	}

	return q, p.Sub(gq), nil
}

// Mod returns the remainder of p divided by g.
func (p *Poly[T]) Mod(g *Poly[T]) (*Poly[T], error) {
	_, r, err := p.DivMod(g)

	return r, err
}
