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

// Package matvec computes a pixel spectrum's similarity against every row of
// a reference spectra table. A reference table is a dense [numClasses,
// numBands] matrix exactly like the matrix in a matrix-vector product, and
// each per-class score is accumulated row by row over that matrix in the
// same row-major order a matrix-vector product uses.
//
// # Metrics
//
// EuclideanScores fills result[c] with the squared Euclidean distance
// between the pixel spectrum and reference row c (smaller is more similar).
// PearsonScores fills result[c] with the Pearson correlation coefficient
// between the same pair (larger is more similar); a reference row with zero
// variance produces the degenerate score -1.1, which both ranks below every
// attainable correlation and is distinguishable from a genuine score of -1.
package matvec
