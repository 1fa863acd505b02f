package field

import "sync"

type twiddleSet struct {
	// For each stage s (m = 2<<s), fwd[s] (and inv[s]) has length m/2
	// holding w^j where w = psi^(n/m) for forward, and w = psiInv^(n/m) for inverse.
	fwd  [][]uint64
	inv  [][]uint64
	nInv uint64 // inverse of n (for inverse NTT scaling)
}

type twiddleCache struct {
	mu    sync.RWMutex
	sizes map[int]*twiddleSet
}

func newTwiddleCache() *twiddleCache {
	return &twiddleCache{sizes: make(map[int]*twiddleSet)}
}

func (f *PrimeField) getTwiddles(n int) (*twiddleSet, error) {
	c := f.twiddles

	c.mu.RLock()
	if ts, ok := c.sizes[n]; ok {
		c.mu.RUnlock()
		return ts, nil
	}
	c.mu.RUnlock()

	// Build outside the lock.
	psi, err := f.GetRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}
	psiInv := f.Inverse(psi)

	var fwd [][]uint64
	var inv [][]uint64

	// stages: m = 2,4,8,...,n  => stage index s = 0..(log2(n)-1)
	for m := 2; m <= n; m = m << 1 {
		half := m >> 1
		wmF := f.Pow(psi, uint64(n/m))    // forward stage root
		wmI := f.Pow(psiInv, uint64(n/m)) // inverse stage root

		rowF := make([]uint64, half)
		rowI := make([]uint64, half)

		wF := uint64(1)
		wI := uint64(1)
		for j := 0; j < half; j++ {
			rowF[j] = wF
			rowI[j] = wI
			wF = f.Mul(wF, wmF)
			wI = f.Mul(wI, wmI)
		}

		fwd = append(fwd, rowF)
		inv = append(inv, rowI)
	}

	ts := &twiddleSet{
		fwd:  fwd,
		inv:  inv,
		nInv: f.Inverse(uint64(n)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have won the race; keep the first one.
	if existing, ok := c.sizes[n]; ok {
		return existing, nil
	}

	c.sizes[n] = ts

	return ts, nil
}

// Convolve multiplies the two coefficient sequences through a radix-2 NTT:
// both sides are padded to the least power of two that holds the product,
// transformed, multiplied pointwise and transformed back. Errors when the
// padded size has no root of unity in the field (size must divide p-1).
func (f *PrimeField) Convolve(a, b []uint64) ([]uint64, error) {
	outLen := len(a) + len(b) - 1

	size := 1
	for size < outLen {
		size <<= 1
	}

	if size == 1 {
		return []uint64{f.Mul(f.Reduce(a[0]), f.Reduce(b[0]))}, nil
	}

	pa := make([]uint64, size)
	for i, v := range a {
		pa[i] = f.Reduce(v)
	}

	pb := make([]uint64, size)
	for i, v := range b {
		pb[i] = f.Reduce(v)
	}

	ts, err := f.getTwiddles(size)
	if err != nil {
		return nil, err
	}

	f.nttForward(pa, ts)
	f.nttForward(pb, ts)

	for i := range pa {
		pa[i] = f.Mul(pa[i], pb[i])
	}

	f.nttBackward(pa, ts)

	return pa[:outLen], nil
}

// nttForward transforms xs in place. len(xs) must be a power of two and
// match the twiddle set's size.
func (f *PrimeField) nttForward(xs []uint64, ts *twiddleSet) {
	n := len(xs)

	// Bit-reversal permutation (in place; allocation-free)
	bitReverseInPlace(xs)

	// Stages: m = 2,4,8,...,n  with precomputed ws per stage.
	for s, m := 0, 2; m <= n; s, m = s+1, m<<1 {
		half := m >> 1
		ws := ts.fwd[s] // length = half
		for k := 0; k < n; k += m {
			// breadth-first butterflies
			for j := 0; j < half; j++ {
				u := xs[k+j]
				t := f.Mul(ws[j], xs[k+j+half])
				xs[k+j] = f.Add(u, t)
				xs[k+j+half] = f.Sub(u, t)
			}
		}
	}
}

func (f *PrimeField) nttBackward(xs []uint64, ts *twiddleSet) {
	n := len(xs)

	bitReverseInPlace(xs)

	// Inverse butterflies use inverse stage twiddles
	for s, m := 0, 2; m <= n; s, m = s+1, m<<1 {
		half := m >> 1
		ws := ts.inv[s]
		for k := 0; k < n; k += m {
			for j := 0; j < half; j++ {
				u := xs[k+j]
				t := f.Mul(ws[j], xs[k+j+half])
				xs[k+j] = f.Add(u, t)
				xs[k+j+half] = f.Sub(u, t)
			}
		}
	}

	// scale by n^{-1}
	for i := 0; i < n; i++ {
		xs[i] = f.Mul(xs[i], ts.nInv)
	}
}

func bitReverseInPlace[T any](xs []T) {
	n := len(xs)
	if n <= 1 {
		return
	}
	j := 0
	for i := 1; i < n-1; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j &= ^bit
			bit >>= 1
		}
		j |= bit
		if i < j {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
