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

// Package hwy provides portable, width-aware vector primitives. A device's
// "coalesce width" (the run of adjacent elements a memory transaction can
// satisfy in one go) is estimated from this package's runtime CPU probe, and
// the same primitives drive the classification kernels' per-band inner loops.
package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel names the CPU's natural vector width class, detected once at
// process start and never changed afterward.
type DispatchLevel int

const (
	// DispatchScalar indicates no useful wide-vector hint; lane width is 1.
	DispatchScalar DispatchLevel = iota
	// DispatchSSE2 indicates a 128-bit baseline width (x86-64 always has it).
	DispatchSSE2
	// DispatchAVX2 indicates a 256-bit width.
	DispatchAVX2
	// DispatchAVX512 indicates a 512-bit width.
	DispatchAVX512
	// DispatchNEON indicates ARM NEON's 128-bit width.
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel and currentWidth are set once by the init() in
// dispatch_amd64.go, dispatch_arm64.go, or dispatch_other.go.
var (
	currentLevel DispatchLevel
	currentWidth int // bytes
)

// CurrentLevel returns the detected vector-width class for this process.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentWidth returns the natural vector width in bytes. The device context
// (C1) reports this as coalesce_width.
func CurrentWidth() int { return currentWidth }

// CurrentName returns a human-readable name for the current target.
func CurrentName() string { return currentLevel.String() }

// HasSIMD reports whether a wide-vector hint is available at all.
func HasSIMD() bool { return currentLevel != DispatchScalar }

// NoSimdEnv reports whether HWY_NO_SIMD forces the CPU probe down to the
// scalar level (a 4-byte width). It does not change kernel tier selection,
// which depends on the work-group size and on-chip memory figures. Useful
// for deterministic testing.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns how many values of T fit in the current vector width.
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 1
	}
	lanes := currentWidth / elementSize
	if lanes < 1 {
		return 1
	}
	return lanes
}

// NumLanes is an alias for MaxLanes, kept for API symmetry with Highway.
func NumLanes[T Lanes]() int { return MaxLanes[T]() }
