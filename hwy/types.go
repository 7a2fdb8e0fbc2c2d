// Package hwy provides portable vector-width-aware primitives with runtime
// CPU probing.
//
// It follows the Highway C++ library's design philosophy: write once, run
// optimally everywhere. This module carries only the slice, reduce, and
// tail-handling primitives the classification kernels need; the rest of
// Highway's SIMD surface (gather/scatter, saturated arithmetic, half
// precision, shuffles) has no consumer here.
//
// Basic usage:
//
//	a := hwy.Load(data1)
//	b := hwy.Load(data2)
//	result := hwy.Add(a, b)
//	hwy.Store(result, output)
package hwy

// Floats is a constraint for the floating-point types the classification
// kernels operate on.
type Floats interface {
	~float32 | ~float64
}

// Lanes is a constraint for all types that can be stored in a Vec.
type Lanes interface {
	Floats
}

// Vec is a portable vector handle. In this build it wraps a plain slice;
// widening to genuine SIMD registers only changes how the functions in
// ops_base.go fill that slice, never the call sites in kernel/ or condition/.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int { return len(v.data) }

// Data returns the underlying slice representation of the vector. Intended
// for tests; production code should prefer Store.
func (v Vec[T]) Data() []T { return v.data }

// Store writes the vector's data to a slice.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Mask represents the result of a lane-wise comparison, used to process the
// tail of a band loop that doesn't divide evenly by the vector width.
type Mask[T Lanes] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int { return len(m.bits) }
