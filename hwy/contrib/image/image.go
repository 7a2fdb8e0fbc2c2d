package image

import "github.com/jvillarasensio/hsiclass/hwy"

// Cube is a band-interleaved-by-line hyperspectral array: Lines x Samples
// scan positions, each holding a Bands-length spectrum. The backing slice is
// always stored in BIL order regardless of the interleave the source cube
// was read from; condition is responsible for getting it there. Because BIL
// groups a line's samples band by band rather than pixel by pixel, a single
// pixel's bands are strided c.samples apart in the backing slice — Pixel and
// PixelAt gather that stride into a contiguous copy on every call.
type Cube[T hwy.Lanes] struct {
	data    []T
	lines   int
	samples int
	bands   int
}

// NewCube allocates a zeroed BIL cube with the given dimensions.
func NewCube[T hwy.Lanes](lines, samples, bands int) *Cube[T] {
	if lines <= 0 || samples <= 0 || bands <= 0 {
		return &Cube[T]{}
	}
	return &Cube[T]{
		data:    make([]T, lines*samples*bands),
		lines:   lines,
		samples: samples,
		bands:   bands,
	}
}

// NewCubeFromBIL wraps an already BIL-ordered slice without copying. The
// caller keeps ownership of data; Cube only reads and writes through it.
func NewCubeFromBIL[T hwy.Lanes](data []T, lines, samples, bands int) *Cube[T] {
	return &Cube[T]{data: data, lines: lines, samples: samples, bands: bands}
}

// Lines returns the number of scan lines.
func (c *Cube[T]) Lines() int { return c.lines }

// Samples returns the number of samples per line.
func (c *Cube[T]) Samples() int { return c.samples }

// Bands returns the number of spectral bands per pixel.
func (c *Cube[T]) Bands() int { return c.bands }

// PixelCount returns the total number of pixels (Lines * Samples).
func (c *Cube[T]) PixelCount() int { return c.lines * c.samples }

// Offset returns the BIL element offset of band 0 of (line, sample). Band b
// of the same pixel lives at Offset(line, sample) + b*c.samples: BIL stores
// one band's full line before advancing to the next band, so a pixel's
// bands are not contiguous in the backing slice.
func (c *Cube[T]) Offset(line, sample int) int {
	return line*c.samples*c.bands + sample
}

// Pixel gathers the Bands-length spectrum at (line, sample) into a freshly
// allocated contiguous slice. BIL's band stride is c.samples, so unlike a
// BIP-backed cube this cannot alias the backing storage: the kernels that
// consume Pixel/PixelAt need a contiguous, stride-1 vector, and gathering it
// once here is what lets them use the same Load/Mul/Add/ReduceSum shape as a
// reference-spectrum row regardless of the cube's real storage order.
func (c *Cube[T]) Pixel(line, sample int) []T {
	if line < 0 || line >= c.lines || sample < 0 || sample >= c.samples || c.data == nil {
		return nil
	}
	out := make([]T, c.bands)
	base := c.Offset(line, sample)
	for b := range c.bands {
		out[b] = c.data[base+b*c.samples]
	}
	return out
}

// PixelAt gathers the spectrum for a flattened pixel index in
// [0, PixelCount()), iterating samples within a line before advancing to
// the next line. Kernels that partition work by a flat pixel index (the
// flat and grouped tiers) use this instead of unflattening to (line,
// sample) themselves.
func (c *Cube[T]) PixelAt(index int) []T {
	if index < 0 || index >= c.lines*c.samples || c.data == nil {
		return nil
	}
	return c.Pixel(index/c.samples, index%c.samples)
}

// Raw returns the underlying BIL-ordered backing slice. Intended for I/O and
// conditioning passes that operate on the whole cube at once; kernel code
// should prefer Pixel/PixelAt.
func (c *Cube[T]) Raw() []T { return c.data }

// Clone creates a deep copy of the cube.
func (c *Cube[T]) Clone() *Cube[T] {
	data := make([]T, len(c.data))
	copy(data, c.data)
	return &Cube[T]{data: data, lines: c.lines, samples: c.samples, bands: c.bands}
}

// ScaleInPlace multiplies every sample in the cube by factor on the calling
// goroutine. The engine's conditioning pass uses condition.Scale instead.
func (c *Cube[T]) ScaleInPlace(factor T) {
	scale := hwy.Set[T](factor)
	lanes := scale.NumLanes()

	var i int
	for i = 0; i+lanes <= len(c.data); i += lanes {
		v := hwy.Load(c.data[i:])
		hwy.Store(hwy.Mul(v, scale), c.data[i:])
	}
	for ; i < len(c.data); i++ {
		c.data[i] *= factor
	}
}
