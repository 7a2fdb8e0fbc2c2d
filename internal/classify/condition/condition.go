// Package condition implements the classification engine's C3 image
// conditioning passes: reflectance scaling and interleave normalization.
package condition

import (
	"fmt"

	"github.com/jvillarasensio/hsiclass/hwy"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
)

// Interleave names the source layout of a raw cube, as declared by its ENVI
// header.
type Interleave int

const (
	BIL Interleave = iota
	BSQ
	BIP
)

func (i Interleave) String() string {
	switch i {
	case BIL:
		return "bil"
	case BSQ:
		return "bsq"
	case BIP:
		return "bip"
	default:
		return "unknown"
	}
}

// Scale divides every sample by scaleFactor/100, skipping the pass entirely
// when scaleFactor is 100 (already in physical percentage reflectance).
// Work is partitioned across pool in contiguous chunks, mirroring the flat
// parallel-for the original spec describes for this pass.
func Scale(pool *workerpool.Pool, cube *image.Cube[float32], scaleFactor int) {
	if scaleFactor == 100 {
		return
	}
	inv := 100.0 / float32(scaleFactor)
	raw := cube.Raw()

	pool.ParallelFor(len(raw), func(start, end int) {
		sub := raw[start:end]
		scale := hwy.Set[float32](inv)
		lanes := scale.NumLanes()

		var i int
		for i = 0; i+lanes <= len(sub); i += lanes {
			v := hwy.Load(sub[i:])
			hwy.Store(hwy.Mul(v, scale), sub[i:])
		}
		for ; i < len(sub); i++ {
			sub[i] *= inv
		}
	})
}

// Reinterleave converts a raw cube stored in src order into a new BIL cube.
// BSQ and BIP are the only other orders the original ENVI format defines;
// any other value is rejected.
func Reinterleave(pool *workerpool.Pool, raw []float32, src Interleave, lines, samples, bands int) (*image.Cube[float32], error) {
	if src == BIL {
		return image.NewCubeFromBIL(raw, lines, samples, bands), nil
	}
	if src != BSQ && src != BIP {
		return nil, fmt.Errorf("condition: unsupported interleave %v", src)
	}

	out := image.NewCube[float32](lines, samples, bands)
	dst := out.Raw()

	pool.ParallelFor(lines, func(lo, hi int) {
		for line := lo; line < hi; line++ {
			for sample := 0; sample < samples; sample++ {
				for band := 0; band < bands; band++ {
					var srcIdx int
					switch src {
					case BSQ:
						srcIdx = band*lines*samples + line*samples + sample
					case BIP:
						srcIdx = line*samples*bands + sample*bands + band
					}
					dstIdx := line*samples*bands + band*samples + sample
					dst[dstIdx] = raw[srcIdx]
				}
			}
		}
	})

	return out, nil
}
