// Package lut implements a one-dimensional piecewise-linear lookup table.
//
// A Table pairs a strictly increasing domain (x) with a range (y) of the same
// length and interpolates linearly between adjacent knots:
//
//	t, err := lut.New(codes, millivolts)
//	mv, err := t.Interpolate(raw)
//
// The table borrows both slices; it never copies or writes them. Callers must
// keep them unchanged for as long as the table is used. A Table is immutable,
// so concurrent queries need no locking.
//
// Queries outside [domain[0], domain[n-1]] are governed by the table's Policy.
// The default rejects them with ErrBelowRange or ErrAboveRange so that callers
// can tell which side of the curve was missed.
package lut

import (
	"sort"

	"calcurve-go/x/mathx"

	"golang.org/x/exp/constraints"
)

// Table is a read-only view over caller-owned knots.
type Table[T constraints.Float] struct {
	x, y   []T
	policy Policy
}

// New validates the knots and returns a table with PolicyReject.
// The count of knots is len(domain); it must equal len(rng) and be at least 2.
// The domain must be finite and strictly increasing, which also rules out
// duplicate abscissas. The range must be finite.
func New[T constraints.Float](domain, rng []T) (*Table[T], error) {
	if len(domain) != len(rng) {
		return nil, ErrLengthMismatch
	}
	if len(domain) < 2 {
		return nil, ErrTooFewSamples
	}
	if i, ok := allFinite(domain); !ok {
		return nil, &SampleError{Index: i, Err: ErrNotFinite}
	}
	if i, ok := allFinite(rng); !ok {
		return nil, &SampleError{Index: i, Err: ErrNotFinite}
	}
	if i, ok := increasing(domain); !ok {
		return nil, &SampleError{Index: i, Err: ErrNotIncreasing}
	}
	return &Table[T]{x: domain, y: rng}, nil
}

// MustNew is New for package-level tables; it panics on a malformed table.
func MustNew[T constraints.Float](domain, rng []T) *Table[T] {
	t, err := New(domain, rng)
	if err != nil {
		panic(err)
	}
	return t
}

// WithPolicy returns a copy of t that shares its knots but uses p.
func (t *Table[T]) WithPolicy(p Policy) *Table[T] {
	c := *t
	c.policy = p
	return &c
}

func (t *Table[T]) Policy() Policy { return t.policy }
func (t *Table[T]) Len() int       { return len(t.x) }

// Knot returns the i-th domain/range pair.
func (t *Table[T]) Knot(i int) (x, y T) { return t.x[i], t.y[i] }

// Bounds returns the first and last domain samples.
func (t *Table[T]) Bounds() (lo, hi T) { return t.x[0], t.x[len(t.x)-1] }

// Domain and Range expose the borrowed slices. Do not modify them.
func (t *Table[T]) Domain() []T { return t.x[:len(t.x):len(t.x)] }
func (t *Table[T]) Range() []T  { return t.y[:len(t.y):len(t.y)] }

// Inverse swaps domain and range, mapping outputs back to inputs.
// It needs a strictly increasing range and keeps the policy.
func (t *Table[T]) Inverse() (*Table[T], error) {
	if i, ok := increasing(t.y); !ok {
		return nil, &SampleError{Index: i, Err: ErrNotIncreasing}
	}
	return &Table[T]{x: t.y, y: t.x, policy: t.policy}, nil
}

// Interpolate returns the curve value at q.
//
// A query equal to a knot returns that knot's range sample exactly. A query
// on an interior knot belongs to the lower of the two adjacent intervals.
func (t *Table[T]) Interpolate(q T) (T, error) {
	if mathx.IsNaN(q) {
		return 0, ErrNaNQuery
	}
	last := len(t.x) - 1
	switch {
	case q < t.x[0]:
		switch t.policy {
		case PolicyClamp:
			return t.y[0], nil
		case PolicyExtrapolate:
			return t.segment(0, q), nil
		}
		return 0, ErrBelowRange
	case q > t.x[last]:
		switch t.policy {
		case PolicyClamp:
			return t.y[last], nil
		case PolicyExtrapolate:
			return t.segment(last-1, q), nil
		}
		return 0, ErrAboveRange
	}
	return t.segment(t.search(q), q), nil
}

// Bracket returns the index i of the interval [domain[i], domain[i+1]] that
// holds q, ignoring the policy: out-of-range queries always fail.
func (t *Table[T]) Bracket(q T) (int, error) {
	if mathx.IsNaN(q) {
		return 0, ErrNaNQuery
	}
	if q < t.x[0] {
		return 0, ErrBelowRange
	}
	if q > t.x[len(t.x)-1] {
		return 0, ErrAboveRange
	}
	return t.search(q), nil
}

// InterpolateAll evaluates every query into out, reusing its storage when
// large enough. It stops at the first failing query and returns the values
// computed so far with a *QueryError.
func (t *Table[T]) InterpolateAll(qs, out []T) ([]T, error) {
	if cap(out) < len(qs) {
		out = make([]T, 0, len(qs))
	}
	out = out[:0]
	for i, q := range qs {
		v, err := t.Interpolate(q)
		if err != nil {
			return out, &QueryError{Index: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// search finds the lowest i with domain[i+1] >= q. For q inside the table
// that is the first interval containing q, the same answer a linear scan
// from index 0 gives.
func (t *Table[T]) search(q T) int {
	return sort.Search(len(t.x)-1, func(i int) bool { return t.x[i+1] >= q })
}

func (t *Table[T]) segment(i int, q T) T {
	x0, x1 := t.x[i], t.x[i+1]
	switch q {
	case x0:
		return t.y[i]
	case x1:
		return t.y[i+1]
	}
	return mathx.Remap(q, x0, x1, t.y[i], t.y[i+1])
}

func allFinite[T constraints.Float](s []T) (int, bool) {
	for i, v := range s {
		if !mathx.IsFinite(v) {
			return i, false
		}
	}
	return 0, true
}

func increasing[T constraints.Float](s []T) (int, bool) {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return i, false
		}
	}
	return 0, true
}
