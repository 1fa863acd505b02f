package field

import (
	"fmt"
	"strconv"
	"strings"
)

// Poly is a dense polynomial over a Field. Coefficients are ordered from
// lowest to highest degree (e.g. [1, 2, 3] is 1 + 2x + 3x^2).
//
// A Poly owns its coefficient slice outright: operators never alias the
// storage of another value. Every arithmetic operation returns a fresh
// canonical value — no trailing zero coefficient, except the length-1
// representation of the zero polynomial.
type Poly[T any] struct {
	f      Field[T]
	coeffs []T
}

/*
NewPoly takes ownership of coeffs; the caller must not touch the slice
afterwards. An empty slice is the zero polynomial. The slice is stored
as given — canonicalization happens on the first arithmetic operation,
so a trailing zero supplied here keeps counting toward EffLen until then.
*/
func NewPoly[T any](f Field[T], coeffs []T) *Poly[T] {
	if len(coeffs) == 0 {
		return Zero(f)
	}

	return &Poly[T]{f: f, coeffs: coeffs}
}

// Zero returns the canonical zero polynomial.
func Zero[T any](f Field[T]) *Poly[T] {
	return &Poly[T]{f: f, coeffs: []T{f.FromInt(0)}}
}

func (p *Poly[T]) Field() Field[T] {
	return p.f
}

// EffLen is the sizing measure of the engine: the stored length for
// length >= 2, and for a single coefficient 1 if it is nonzero, else 0.
// Note this is NOT the mathematical degree — a nonzero constant reports
// 1 just like x would. Division and reciprocal precision are sized off
// this value and depend on the boundary behavior; do not "fix" it.
func (p *Poly[T]) EffLen() int {
	if len(p.coeffs) == 1 {
		if p.f.IsZero(p.coeffs[0]) {
			return 0
		}

		return 1
	}

	return len(p.coeffs)
}

func (p *Poly[T]) IsZero() bool {
	for _, c := range p.coeffs {
		if !p.f.IsZero(c) {
			return false
		}
	}

	return true
}

func (p *Poly[T]) Equal(q *Poly[T]) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}

	for i := range p.coeffs {
		if !p.f.Equals(p.coeffs[i], q.coeffs[i]) {
			return false
		}
	}

	return true
}

func (p *Poly[T]) Copy() *Poly[T] {
	cpy := make([]T, len(p.coeffs))
	copy(cpy, p.coeffs)

	return &Poly[T]{f: p.f, coeffs: cpy}
}

// Coeffs returns a copy of the coefficient slice.
func (p *Poly[T]) Coeffs() []T {
	cpy := make([]T, len(p.coeffs))
	copy(cpy, p.coeffs)

	return cpy
}

// trim drops trailing zero coefficients, keeping at least one.
func (p *Poly[T]) trim() {
	i := len(p.coeffs) - 1
	for i > 0 && p.f.IsZero(p.coeffs[i]) {
		i--
	}

	p.coeffs = p.coeffs[:i+1]
}

func (p *Poly[T]) Add(q *Poly[T]) *Poly[T] {
	f := p.f
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]T, n)

	for i := 0; i < n; i++ {
		av, bv := f.FromInt(0), f.FromInt(0)
		if i < len(p.coeffs) {
			av = p.coeffs[i]
		}

		if i < len(q.coeffs) {
			bv = q.coeffs[i]
		}

		out[i] = f.Add(av, bv)
	}

	res := &Poly[T]{f: f, coeffs: out}
	res.trim()

	return res
}

func (p *Poly[T]) Sub(q *Poly[T]) *Poly[T] {
	f := p.f
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]T, n)

	for i := 0; i < n; i++ {
		av, bv := f.FromInt(0), f.FromInt(0)
		if i < len(p.coeffs) {
			av = p.coeffs[i]
		}

		if i < len(q.coeffs) {
			bv = q.coeffs[i]
		}

		out[i] = f.Sub(av, bv)
	}

	res := &Poly[T]{f: f, coeffs: out}
	res.trim()

	return res
}

func (p *Poly[T]) MulScalar(x T) *Poly[T] {
	out := make([]T, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = p.f.Mul(c, x)
	}

	res := &Poly[T]{f: p.f, coeffs: out}
	res.trim()

	return res
}

// DivScalar multiplies by the field inverse of x; x must be nonzero.
func (p *Poly[T]) DivScalar(x T) (*Poly[T], error) {
	if p.f.IsZero(x) {
		return nil, ErrZeroScalar
	}

	return p.MulScalar(p.f.Inverse(x)), nil
}

// Eval computes p(x) by Horner's rule in O(len) field operations.
func (p *Poly[T]) Eval(x T) T {
	f := p.f
	res := f.FromInt(0)

	for i := len(p.coeffs) - 1; i >= 0; i-- {
		res = f.Add(p.coeffs[i], f.Mul(x, res))
	}

	return res
}

// Derivative returns the formal derivative; a constant differentiates to
// the zero polynomial.
func (p *Poly[T]) Derivative() *Poly[T] {
	if len(p.coeffs) == 1 {
		return Zero(p.f)
	}

	f := p.f
	out := make([]T, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = f.Mul(p.coeffs[i], f.FromInt(i))
	}

	res := &Poly[T]{f: f, coeffs: out}
	res.trim()

	return res
}

// Trunc reduces p modulo x^n, i.e. keeps the first n coefficients.
// n <= 0 yields the zero polynomial; truncation never grows a value.
func (p *Poly[T]) Trunc(n int) *Poly[T] {
	if n <= 0 {
		return Zero(p.f)
	}

	if len(p.coeffs) <= n {
		return p.Copy()
	}

	out := make([]T, n)
	copy(out, p.coeffs[:n])

	res := &Poly[T]{f: p.f, coeffs: out}
	res.trim()

	return res
}

// rev returns the polynomial with reversed coefficient order, canonicalized.
func (p *Poly[T]) rev() *Poly[T] {
	out := make([]T, len(p.coeffs))
	for i, c := range p.coeffs {
		out[len(out)-1-i] = c
	}

	res := &Poly[T]{f: p.f, coeffs: out}
	res.trim()

	return res
}

// String renders every stored coefficient from highest to lowest degree as
// `c*x^k`, with `c*x` for k=1 and a bare `c` for the constant, joined by
// " + ". Consumers compare against this exact form; do not change it.
func (p *Poly[T]) String() string {
	bldr := strings.Builder{}

	for i := len(p.coeffs) - 1; i >= 0; i-- {
		fmt.Fprintf(&bldr, "%v", p.coeffs[i])

		if i >= 1 {
			bldr.WriteString("*x")
		}

		if i > 1 {
			bldr.WriteString("^")
			bldr.WriteString(strconv.Itoa(i))
		}

		if i >= 1 {
			bldr.WriteString(" + ")
		}
	}

	return bldr.String()
}
