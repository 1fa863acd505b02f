package field

// directMulBound is the largest effective result degree still multiplied
// by schoolbook convolution; anything above goes through the field's
// fast-multiply transform. A single global tuning constant: the transform
// has constant overhead that only pays off past the quadratic crossover.
const directMulBound = 200

// Mul returns the product p*q. Multiplication below the degree bound is
// the direct O(len(p)*len(q)) convolution; above it the field's Convolve
// does the work in O(n log n). Both paths produce the same canonical
// result (up to the field's equality tolerance).
func (p *Poly[T]) Mul(q *Poly[T]) (*Poly[T], error) {
	boundDeg := p.EffLen() + q.EffLen() - 1

	var out []T
	if boundDeg <= directMulBound {
		out = mulSchoolbook(p.f, p.coeffs, q.coeffs)
	} else {
		var err error
		out, err = p.f.Convolve(p.coeffs, q.coeffs)
		if err != nil {
			return nil, err
		}
	}

	res := &Poly[T]{f: p.f, coeffs: out}
	res.trim()

	return res, nil
}

// mulSchoolbook accumulates a[i]*b[j] into out[i+j].
func mulSchoolbook[T any](f Field[T], a, b []T) []T {
	out := make([]T, len(a)+len(b)-1)
	for i := range out {
		out[i] = f.FromInt(0)
	}

	for i := range a {
		ai := a[i]
		if f.IsZero(ai) {
			continue
		}

		for j := range b {
			out[i+j] = f.Add(out[i+j], f.Mul(ai, b[j]))
		}
	}

	return out
}
