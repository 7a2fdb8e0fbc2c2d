// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

// This file provides pure Go (portable) implementations of the handful of
// Highway-style operations the classification kernels exercise: load/store,
// elementwise add/sub/mul, fused multiply-add, and horizontal reduction.
// Widening any one of these to a real architecture-specific backend later
// only touches this file; every call site in kernel/ and condition/ is
// written against the Vec[T] abstraction, not against a lane count.

// Load creates a vector by loading data from a slice. It reads up to
// MaxLanes[T]() elements, or fewer if src is shorter (the tail case).
func Load[T Lanes](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes v's lanes into dst, truncating to whichever is shorter.
func Store[T Lanes](v Vec[T], dst []T) {
	v.Store(dst)
}

// Set broadcasts value to every lane of a new vector.
func Set[T Lanes](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero returns a vector with every lane set to zero.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// Add returns a + b, lane-wise.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] + b.data[i]
	}
	return Vec[T]{data: out}
}

// Sub returns a - b, lane-wise.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] - b.data[i]
	}
	return Vec[T]{data: out}
}

// Mul returns a * b, lane-wise.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] * b.data[i]
	}
	return Vec[T]{data: out}
}

// FMA returns a*b + c, lane-wise. The classification kernels use it for
// per-lane accumulation of squared differences in matvec.EuclideanScores.
func FMA[T Lanes](a, b, c Vec[T]) Vec[T] {
	n := min(min(len(a.data), len(b.data)), len(c.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i]*b.data[i] + c.data[i]
	}
	return Vec[T]{data: out}
}

// ReduceSum horizontally sums every lane of v into a scalar. This is the
// final step of every dot-product-shaped loop in the classification kernels.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for _, x := range v.data {
		sum += x
	}
	return sum
}

// MaskLoad is like Load but only fills lanes where mask is set; the rest are
// zero. Used for the remainder of a band loop that isn't a multiple of the
// vector width.
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	lanes := MaxLanes[T]()
	out := make([]T, lanes)
	for i := 0; i < lanes && i < len(mask.bits) && i < len(src); i++ {
		if mask.bits[i] {
			out[i] = src[i]
		}
	}
	return Vec[T]{data: out}
}

// MaskStore writes v's lanes into dst only where mask is set.
func MaskStore[T Lanes](mask Mask[T], v Vec[T], dst []T) {
	n := min(len(dst), min(len(mask.bits), len(v.data)))
	for i := range n {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}
