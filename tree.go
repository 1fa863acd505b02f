// Package fastpoly provides fast multi-point evaluation of dense
// polynomials: a balanced product tree of linear factors is built once by
// binary splitting, then the polynomial is reduced down the tree by
// repeated remaindering until each leaf holds its point's value. Both
// phases cost O(n log^2 n).
package fastpoly

import (
	"errors"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/phlzy/go-fastpoly/field"
)

var ErrNoPoints = errors.New("remainder tree requires at least one evaluation point")

// LinearFactorsProduct computes (x - roots[0]) * (x - roots[1]) * ... by
// binary splitting in O(n log^2 n). An empty root set yields the constant 1.
func LinearFactorsProduct[T any](f field.Field[T], roots []T) (*field.Poly[T], error) {
	if len(roots) == 0 {
		return field.NewPoly(f, []T{f.FromInt(1)}), nil
	}

	return linearFactorsRange(f, roots, nil, 1, 0, len(roots))
}

// linearFactorsRange builds the product of the linear factors for
// roots[l:r]. With a non-nil node slice it additionally records every
// intermediate product at its heap index (children of v at 2v and 2v+1).
func linearFactorsRange[T any](f field.Field[T], roots []T, nodes []*field.Poly[T], v, l, r int) (*field.Poly[T], error) {
	if l+1 == r {
		node := field.NewPoly(f, []T{f.Neg(roots[l]), f.FromInt(1)})
		if nodes != nil {
			nodes[v] = node
		}

		return node, nil
	}

	m := (l + r) / 2

	left, err := linearFactorsRange(f, roots, nodes, 2*v, l, m)
	if err != nil {
		return nil, err
	}

	right, err := linearFactorsRange(f, roots, nodes, 2*v+1, m, r)
	if err != nil {
		return nil, err
	}

	prod, err := left.Mul(right)
	if err != nil {
		return nil, err
	}

	if nodes != nil {
		nodes[v] = prod
	}

	return prod, nil
}

// RemainderTree is a complete binary tree over a point set: node v,
// covering points [l, r), holds the product of the linear factors
// (x - point[i]) for i in [l, r), stored heap-indexed (children of v at
// 2v and 2v+1). The tree is built once and read-only afterwards; build
// fully completes before any Evaluate call reads it.
type RemainderTree[T any] struct {
	f      field.Field[T]
	points []T
	nodes  []*field.Poly[T]
}

func NewRemainderTree[T any](f field.Field[T], points []T) (*RemainderTree[T], error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	pts := make([]T, len(points))
	copy(pts, points)

	nodes := make([]*field.Poly[T], 4*len(pts))
	if _, err := linearFactorsRange(f, pts, nodes, 1, 0, len(pts)); err != nil {
		return nil, err
	}

	return &RemainderTree[T]{f: f, points: pts, nodes: nodes}, nil
}

// Product returns the root polynomial, the product of all linear factors.
func (t *RemainderTree[T]) Product() *field.Poly[T] {
	return t.nodes[1]
}

func (t *RemainderTree[T]) Len() int {
	return len(t.points)
}

// Evaluate computes p at every tree point, in point order. The polynomial
// is reduced modulo each child's product on the way down, so the work per
// level stays proportional to the total tree size.
func (t *RemainderTree[T]) Evaluate(p *field.Poly[T]) ([]T, error) {
	out := make([]T, len(t.points))
	if err := t.evalRange(p, out, 1, 0, len(t.points)); err != nil {
		return nil, err
	}

	return out, nil
}

func (t *RemainderTree[T]) evalRange(p *field.Poly[T], out []T, v, l, r int) error {
	if l+1 == r {
		out[l] = p.Eval(t.points[l])

		return nil
	}

	m := (l + r) / 2

	lp, err := t.reduce(p, 2*v)
	if err != nil {
		return err
	}

	rp, err := t.reduce(p, 2*v+1)
	if err != nil {
		return err
	}

	if err := t.evalRange(lp, out, 2*v, l, m); err != nil {
		return err
	}

	return t.evalRange(rp, out, 2*v+1, m, r)
}

// reduce computes p mod nodes[v]. A polynomial already smaller than the
// node's product is its own remainder and descends unreduced.
func (t *RemainderTree[T]) reduce(p *field.Poly[T], v int) (*field.Poly[T], error) {
	node := t.nodes[v]
	if p.EffLen() < node.EffLen() {
		return p, nil
	}

	return p.Mod(node)
}

// minParallelRange is the subtree size below which EvaluateParallel stops
// forking and runs sequentially.
const minParallelRange = 32

// EvaluateParallel is Evaluate with the two independent subtree descents
// forked on the upper tree levels. Each leaf writes only its own index of
// the result, so the output order matches Evaluate exactly.
func (t *RemainderTree[T]) EvaluateParallel(p *field.Poly[T]) ([]T, error) {
	out := make([]T, len(t.points))

	depth := bits.Len(uint(runtime.GOMAXPROCS(0)))
	if err := t.evalParallel(p, out, 1, 0, len(t.points), depth); err != nil {
		return nil, err
	}

	return out, nil
}

func (t *RemainderTree[T]) evalParallel(p *field.Poly[T], out []T, v, l, r, depth int) error {
	if depth == 0 || r-l < minParallelRange {
		return t.evalRange(p, out, v, l, r)
	}

	m := (l + r) / 2

	var g errgroup.Group

	g.Go(func() error {
		lp, err := t.reduce(p, 2*v)
		if err != nil {
			return err
		}

		return t.evalParallel(lp, out, 2*v, l, m, depth-1)
	})

	g.Go(func() error {
		rp, err := t.reduce(p, 2*v+1)
		if err != nil {
			return err
		}

		return t.evalParallel(rp, out, 2*v+1, m, r, depth-1)
	})

	return g.Wait()
}

// MultiPointEvaluate builds a remainder tree over the points and evaluates
// p at all of them, O(n log^2 n) total. Results come back in point order;
// no points yields an empty result.
func MultiPointEvaluate[T any](p *field.Poly[T], points []T) ([]T, error) {
	if len(points) == 0 {
		return []T{}, nil
	}

	t, err := NewRemainderTree(p.Field(), points)
	if err != nil {
		return nil, err
	}

	return t.Evaluate(p)
}
