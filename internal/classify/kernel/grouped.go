package kernel

import (
	"sync"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
)

// Grouped runs the tier-G kernel: one work-group per pixel, localSize
// work-items per group each scoring its own contiguous chunk of the
// n_spectrums candidates via ScoreAll, reduced through a barrier rather than
// atomics. The dispatcher only ever selects a localSize that evenly divides
// numSpectra (§4.5), so the chunks tile the reference table exactly.
func Grouped(pool *workerpool.Pool, metric Metric, cube *image.Cube[float32], spectra []float32, bands, numSpectra, localSize int, labels []int32) {
	pool.ParallelFor(cube.PixelCount(), func(start, end int) {
		for pixelIdx := start; pixelIdx < end; pixelIdx++ {
			pixel := cube.PixelAt(pixelIdx)
			labels[pixelIdx] = groupReduce(metric, pixel, spectra, bands, numSpectra, localSize)
		}
	})
}

// groupReduce processes one pixel's work-group: localSize lanes each score
// and reduce their own contiguous chunk of the spectra table with ScoreAll,
// a barrier, then a single-lane final reduction over the per-lane partial
// winners. Lanes own chunks in increasing index order, so — like Flat's
// batch CAS loop — ties resolve to the smallest global spectrum index.
func groupReduce(metric Metric, pixel, spectra []float32, bands, numSpectra, localSize int) int32 {
	chunk := numSpectra / localSize
	laneScores := make([]float32, localSize)
	laneIndices := make([]int32, localSize)

	var barrier sync.WaitGroup
	barrier.Add(localSize)
	for lane := range localSize {
		go func(lane int) {
			defer barrier.Done()
			chunkStart := lane * chunk
			row := spectra[chunkStart*bands : (chunkStart+chunk)*bands]

			scores := make([]float32, chunk)
			ScoreAll(metric, pixel, row, bands, chunk, scores)

			localBest := BestOf(metric, scores)
			if localBest < 0 {
				laneIndices[lane] = -1
				return
			}
			laneScores[lane] = scores[localBest]
			laneIndices[lane] = int32(chunkStart) + localBest
		}(lane)
	}
	barrier.Wait()

	best := InitScore(metric)
	bestIdx := int32(-1)
	for lane := range localSize {
		if laneIndices[lane] < 0 {
			continue
		}
		if Improves(metric, laneScores[lane], best) {
			best = laneScores[lane]
			bestIdx = laneIndices[lane]
		}
	}
	return bestIdx
}
