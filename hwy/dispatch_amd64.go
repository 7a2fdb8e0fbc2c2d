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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// init probes the CPU's widest vector extension via x/sys/cpu and records it
// as the process-wide coalesce-width hint. This module never emits actual
// AVX/AVX-512 machine instructions (that requires GOEXPERIMENT=simd); the
// probe exists so the device context can reason about how many adjacent
// float32/float64 values a coalesced read would naturally cover.
func init() {
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 4
		return
	}

	switch {
	case cpu.X86.HasAVX512F:
		currentLevel = DispatchAVX512
		currentWidth = 64
	case cpu.X86.HasAVX2:
		currentLevel = DispatchAVX2
		currentWidth = 32
	case cpu.X86.HasSSE2:
		currentLevel = DispatchSSE2
		currentWidth = 16
	default:
		currentLevel = DispatchScalar
		currentWidth = 4
	}
}
