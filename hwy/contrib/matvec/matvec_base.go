package matvec

import (
	"math"

	"github.com/jvillarasensio/hsiclass/hwy"
)

// EuclideanScores computes, for every reference row in spectra (a dense
// [numClasses, numBands] matrix in row-major order), the squared Euclidean
// distance to pixel. result must be pre-allocated with length numClasses.
//
// Each row's distance is itself a dot product: sum((pixel[b]-row[b])^2) is
// computed by first forming the lane-wise difference, then squaring and
// reducing with the same Load/Mul/Add/ReduceSum shape a row-major
// matrix-vector product uses, vector width at a time with a scalar tail for
// the remainder.
//
// Panics if len(spectra) < numClasses*numBands, len(pixel) < numBands, or
// len(result) < numClasses.
func EuclideanScores[T hwy.Floats](spectra []T, numClasses, numBands int, pixel, result []T) {
	if len(spectra) < numClasses*numBands {
		panic("matvec: spectra slice too small")
	}
	if len(pixel) < numBands {
		panic("matvec: pixel slice too small")
	}
	if len(result) < numClasses {
		panic("matvec: result slice too small")
	}

	for c := range numClasses {
		row := spectra[c*numBands : (c+1)*numBands]

		sum := hwy.Zero[T]()
		lanes := sum.NumLanes()

		var b int
		for b = 0; b+lanes <= numBands; b += lanes {
			vp := hwy.Load(pixel[b:])
			vr := hwy.Load(row[b:])
			diff := hwy.Sub(vp, vr)
			sum = hwy.FMA(diff, diff, sum)
		}

		acc := hwy.ReduceSum(sum)
		for ; b < numBands; b++ {
			d := pixel[b] - row[b]
			acc += d * d
		}
		result[c] = acc
	}
}

// PearsonScores computes, for every reference row in spectra, the Pearson
// correlation coefficient against pixel. result must be pre-allocated with
// length numClasses.
//
// A reference row with zero variance (a degenerate, constant spectrum) has
// no defined correlation; PearsonScores reports -1.1 for that row, a value
// lower than any value the coefficient can legitimately take so it never
// wins an argmax over real scores.
func PearsonScores[T hwy.Floats](spectra []T, numClasses, numBands int, pixel, result []T) {
	if len(spectra) < numClasses*numBands {
		panic("matvec: spectra slice too small")
	}
	if len(pixel) < numBands {
		panic("matvec: pixel slice too small")
	}
	if len(result) < numClasses {
		panic("matvec: result slice too small")
	}

	pixelMean := mean(pixel[:numBands])

	for c := range numClasses {
		row := spectra[c*numBands : (c+1)*numBands]
		rowMean := mean(row)

		var numerator, pixelSS, rowSS T
		for b := range numBands {
			dp := pixel[b] - pixelMean
			dr := row[b] - rowMean
			numerator += dp * dr
			pixelSS += dp * dp
			rowSS += dr * dr
		}

		denom := T(math.Sqrt(float64(pixelSS) * float64(rowSS)))
		if denom == 0 {
			result[c] = -1.1
			continue
		}
		result[c] = numerator / denom
	}
}

func mean[T hwy.Floats](v []T) T {
	sum := hwy.Zero[T]()
	lanes := sum.NumLanes()

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		sum = hwy.Add(sum, hwy.Load(v[i:]))
	}
	acc := hwy.ReduceSum(sum)
	for ; i < len(v); i++ {
		acc += v[i]
	}
	return acc / T(len(v))
}
