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

// Package image provides Cube, a band-interleaved-by-line (BIL) backed
// three-dimensional array addressed by (line, sample, band). Every
// reference-spectrum row and every pixel spectrum the classification
// kernels read is a contiguous Band-length slice returned by Cube.Pixel, so
// the same Load/Mul/Add/ReduceSum pattern the matvec package uses applies
// directly regardless of which interleave a source cube was staged from.
//
// # Addressing
//
// A BIL cube stores one full scan line's samples for band 0, then that
// line's samples for band 1, and so on, before advancing to the next line:
//
//	offset(line, sample, band) = line*samples*bands + band*samples + sample
//
// Band stride is samples, not 1: a pixel's bands are scattered across the
// backing slice, not contiguous within it. Pixel(line, sample) gathers that
// stride into a freshly allocated contiguous spectrum slice so classification
// kernels still see a stride-1 vector for their band loop, matching the
// layout a reference-spectrum row already has.
package image
