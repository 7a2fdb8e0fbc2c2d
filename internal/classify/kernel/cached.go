package kernel

import (
	"sync"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
)

// Cached runs the tier-C kernel: same pixel-per-work-group partition as
// tier G, but each work-group first cooperatively loads its pixel tile (and
// the dispatcher may additionally have decided the whole spectra matrix
// fits on-chip) using a coalesced stride-localSize pattern, then each lane
// owns one pixel outright and writes its winning index directly — no
// group-level reduction is needed because lanes never share a pixel.
//
// cachedSpectra is non-nil when the dispatcher proved the full spectra
// matrix fits in on-chip memory alongside the pixel tile; otherwise lanes
// read reference rows from the global spectra slice.
func Cached(pool *workerpool.Pool, metric Metric, cube *image.Cube[float32], spectra []float32, cachedSpectra []float32, bands, numSpectra, localSize int, labels []int32) {
	pixelCount := cube.PixelCount()
	numGroups := (pixelCount + localSize - 1) / localSize

	refSpectra := spectra
	if cachedSpectra != nil {
		refSpectra = cachedSpectra
	}

	pool.ParallelFor(numGroups, func(gStart, gEnd int) {
		for g := gStart; g < gEnd; g++ {
			pixelBase := g * localSize
			tileSize := min(localSize, pixelCount-pixelBase)
			tile := coalescedLoadCubeTile(cube, pixelBase, tileSize, localSize)

			scores := make([]float32, numSpectra)
			for lane := range tileSize {
				pixelIdx := pixelBase + lane
				pixel := tile[lane*bands : (lane+1)*bands]

				ScoreAll(metric, pixel, refSpectra, bands, numSpectra, scores)
				labels[pixelIdx] = BestOf(metric, scores)
			}
		}
	})
}

// LoadSpectraCache cooperatively copies the entire spectra matrix into a
// fresh on-chip buffer using the same coalesced stride-localSize pattern as
// coalescedLoadTile. The dispatcher calls this once per classification,
// before any group starts, when it has proved the matrix fits on-chip
// alongside every group's pixel tile.
func LoadSpectraCache(spectra []float32, localSize int) []float32 {
	return coalescedLoadTile(spectra, 0, len(spectra), 1, localSize)
}

// coalescedLoadCubeTile cooperatively gathers tileSize pixels starting at
// flattened pixel index pixelBase out of cube into a fresh, pixel-contiguous
// on-chip tile (tileSize*bands elements, bands innermost). cube's own
// backing storage is true BIL: a pixel's bands are cube.Samples() apart, not
// adjacent, so each lane computes the real strided source address itself
// rather than reading a contiguous run the way coalescedLoadTile does for
// the already pixel-contiguous spectra matrix. localSize lanes each handle a
// stride-localSize run over the tile's (pixel, band) cells: lane l fills
// cells l, l+localSize, l+2*localSize, ...
func coalescedLoadCubeTile(cube *image.Cube[float32], pixelBase, tileSize, localSize int) []float32 {
	bands := cube.Bands()
	samples := cube.Samples()
	raw := cube.Raw()

	n := tileSize * bands
	tile := make([]float32, n)

	lanes := min(localSize, n)
	if lanes == 0 {
		return tile
	}

	var barrier sync.WaitGroup
	barrier.Add(lanes)
	for lane := range lanes {
		go func(lane int) {
			defer barrier.Done()
			for cell := lane; cell < n; cell += lanes {
				p, b := cell/bands, cell%bands
				pixelIdx := pixelBase + p
				line, sample := pixelIdx/samples, pixelIdx%samples
				srcIdx := line*samples*bands + b*samples + sample
				tile[cell] = raw[srcIdx]
			}
		}(lane)
	}
	barrier.Wait()

	return tile
}

// coalescedLoadTile cooperatively copies tileSize pixels' worth of band data
// (tileSize*bands elements) from raw starting at pixelBase*bands into a
// fresh on-chip tile, using localSize lanes each reading a stride-localSize
// run: lane l reads elements l, l+localSize, l+2*localSize, ... This mirrors
// the coalesced access pattern real hardware rewards even though a single
// host process has no literal coalescing hardware to benefit from it.
func coalescedLoadTile(raw []float32, pixelBase, tileSize, bands, localSize int) []float32 {
	n := tileSize * bands
	tile := make([]float32, n)
	srcBase := pixelBase * bands

	lanes := min(localSize, n)
	if lanes == 0 {
		return tile
	}

	var barrier sync.WaitGroup
	barrier.Add(lanes)
	for lane := range lanes {
		go func(lane int) {
			defer barrier.Done()
			for idx := lane; idx < n; idx += lanes {
				tile[idx] = raw[srcBase+idx]
			}
		}(lane)
	}
	barrier.Wait()

	return tile
}
