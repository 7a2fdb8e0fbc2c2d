// Package device implements the classification engine's C1 device context:
// probing the host's parallelism and vector-width capabilities and, from
// those probes, selecting which kernel cooperation tier is realizable.
package device

import (
	"runtime"

	"github.com/go-logr/logr"

	"github.com/jvillarasensio/hsiclass/hwy"
)

// defaultOnChipMemBytes is a conservative per-core L2 slice estimate. Go has
// no portable syscall for cache topology, so this is a documented constant
// rather than a probe; callers needing a different figure for their hardware
// override it via Context.OnChipMemBytes or classify.Config.OnChipMemHint.
const defaultOnChipMemBytes = 256 * 1024

// Context holds the probed capabilities of the realized device.
type Context struct {
	Class            string // always "cpu" in this implementation
	MaxWorkGroupSize int
	OnChipMemBytes   int
	CoalesceWidth    int
}

// Probe realizes requested against the only device class this engine can
// offer (the host CPU). Any class other than CPU/DEFAULT falls back to CPU
// with a logged warning, exercising the fallback path real heterogeneous
// hardware needs without requiring a second real backend to exist.
func Probe(requested string, onChipMemHint int, log logr.Logger) Context {
	actual := "cpu"
	if requested != "" && requested != "cpu" && requested != "default" {
		log.Info("requested device class unavailable, falling back", "requested", requested, "actual", actual)
	}

	onChip := defaultOnChipMemBytes
	if onChipMemHint > 0 {
		onChip = onChipMemHint
	}

	return Context{
		Class:            actual,
		MaxWorkGroupSize: runtime.GOMAXPROCS(0),
		OnChipMemBytes:   onChip,
		CoalesceWidth:    hwy.CurrentWidth(),
	}
}

// SupportsGrouped reports whether tier G is realizable: a work-group needs
// at least two cooperating work-items to be meaningful.
func (c Context) SupportsGrouped() bool {
	return c.MaxWorkGroupSize > 1
}

// TileFits reports whether a tier-C tile of localSize pixels plus the full
// spectra matrix fits in on-chip memory, per the sizing formula in §4.4:
// (localSize*bands + numSpectra*bands) * sizeof(float32).
func (c Context) TileFits(localSize, bands, numSpectra int) bool {
	const sizeofFloat32 = 4
	needed := (localSize*bands + numSpectra*bands) * sizeofFloat32
	return needed <= c.OnChipMemBytes
}
