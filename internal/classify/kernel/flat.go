package kernel

import (
	"math"
	"sync/atomic"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
)

// Flat runs the tier-F kernel: global work count is pixelCount*numSpectra,
// one work-item per (pixel, spectrum) pair. Results are reduced through a
// two-cell-per-pixel atomic CAS protocol — one cell holds the current best
// score (as float32 bits in a Uint32), the other the winning spectrum index
// (an Int32) — exactly as §4.4 specifies, kept as separate cells rather than
// conflated into one the way the source this was derived from did.
//
// Work is handed out in numSpectra-sized batches aligned to pixel
// boundaries, so a single worker owns all of one pixel's spectra. The whole
// batch is scored in one ScoreAll call before the CAS loop runs, then
// processed in increasing index order: combined with the strict-less
// improvement check, this pins the tie-break to the smallest index
// deterministically rather than to whichever goroutine happens to win a
// race, while the cells themselves remain genuinely atomic: a reader
// observing mid-run state (e.g. a concurrent Retrieve) always sees a
// consistent score/index pair for a settled pixel.
func Flat(pool *workerpool.Pool, metric Metric, cube *image.Cube[float32], spectra []float32, bands, numSpectra int, labels []int32) {
	pixelCount := cube.PixelCount()
	scores := make([]atomic.Uint32, pixelCount)
	indices := make([]atomic.Int32, pixelCount)

	initBits := math.Float32bits(InitScore(metric))
	for i := range scores {
		scores[i].Store(initBits)
		indices[i].Store(-1)
	}

	total := pixelCount * numSpectra
	pool.ParallelForAtomicBatched(total, numSpectra, func(start, end int) {
		// A pool with a single worker (or a closed pool) hands over the whole
		// range in one call, so walk it one pixel-aligned batch at a time.
		batchScores := make([]float32, numSpectra)
		for base := start; base < end; base += numSpectra {
			pixelIdx := base / numSpectra
			pixel := cube.PixelAt(pixelIdx)
			ScoreAll(metric, pixel, spectra, bands, numSpectra, batchScores)

			for specIdx, candidate := range batchScores {
				for {
					currentBits := scores[pixelIdx].Load()
					current := math.Float32frombits(currentBits)
					if !Improves(metric, candidate, current) {
						break
					}
					if scores[pixelIdx].CompareAndSwap(currentBits, math.Float32bits(candidate)) {
						indices[pixelIdx].Store(int32(specIdx))
						break
					}
				}
			}
		}
	})

	for i := range labels {
		labels[i] = indices[i].Load()
	}
}
