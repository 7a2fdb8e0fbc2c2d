// Package dispatch implements the classification engine's C5 kernel
// dispatcher: tier selection, local-size sizing, on-chip allocation sizing,
// and submission of the concrete kernel variant the device and metric
// support.
package dispatch

import (
	"github.com/go-logr/logr"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
	"github.com/jvillarasensio/hsiclass/internal/classify/device"
	"github.com/jvillarasensio/hsiclass/internal/classify/kernel"
)

// Plan is the result of sizing a classification submission: which tier,
// what local size, and whether the spectra matrix was proved to fit
// on-chip.
type Plan struct {
	Tier          Tier
	LocalSize     int
	CacheSpectra  bool
}

// Tier mirrors classify.KernelTier, kept independent so dispatch has no
// import-cycle dependency on its own caller.
type Tier int

const (
	TierFlat Tier = iota
	TierGrouped
	TierCached
)

// SelectTier picks the highest tier the device context and configuration
// jointly support, per §4.1: flat is always available, grouped requires a
// work-group size > 1, cached additionally requires a viable local size
// whose tile fits on-chip.
func SelectTier(ctx device.Context, forceTier *Tier, bands, numSpectra, pixelCount int, log logr.Logger) Plan {
	if forceTier != nil {
		return planFor(*forceTier, ctx, bands, numSpectra, pixelCount, log)
	}

	if !ctx.SupportsGrouped() {
		log.V(1).Info("device does not support grouping, using flat tier")
		return Plan{Tier: TierFlat}
	}

	localSize, ok := localSizeFor(ctx.MaxWorkGroupSize, numSpectra, pixelCount, ctx, bands, true)
	if ok {
		return Plan{Tier: TierCached, LocalSize: localSize, CacheSpectra: spectraFits(ctx, localSize, bands, numSpectra)}
	}

	log.V(1).Info("no cached-tier local size fits on-chip, degrading from cached to grouped tier")
	localSize, ok = localSizeFor(ctx.MaxWorkGroupSize, numSpectra, pixelCount, ctx, bands, false)
	if ok {
		return Plan{Tier: TierGrouped, LocalSize: localSize}
	}

	log.V(1).Info("no valid local size for grouped tier, degrading to flat tier")
	return Plan{Tier: TierFlat}
}

func planFor(forced Tier, ctx device.Context, bands, numSpectra, pixelCount int, log logr.Logger) Plan {
	switch forced {
	case TierFlat:
		return Plan{Tier: TierFlat}
	case TierGrouped:
		if localSize, ok := localSizeFor(ctx.MaxWorkGroupSize, numSpectra, pixelCount, ctx, bands, false); ok {
			return Plan{Tier: TierGrouped, LocalSize: localSize}
		}
		return Plan{Tier: TierFlat}
	case TierCached:
		if localSize, ok := localSizeFor(ctx.MaxWorkGroupSize, numSpectra, pixelCount, ctx, bands, true); ok {
			return Plan{Tier: TierCached, LocalSize: localSize, CacheSpectra: spectraFits(ctx, localSize, bands, numSpectra)}
		}
		if localSize, ok := localSizeFor(ctx.MaxWorkGroupSize, numSpectra, pixelCount, ctx, bands, false); ok {
			return Plan{Tier: TierGrouped, LocalSize: localSize}
		}
		return Plan{Tier: TierFlat}
	default:
		return Plan{Tier: TierFlat}
	}
}

// localSizeFor implements the local-size selection rule of §4.5: start at
// maxWorkGroupSize, decrement until the candidate evenly divides the tier's
// partition unit: n_spectrums for the grouped tier (its inner loop) and the
// pixel count for the cached tier (requireTile), which additionally demands
// the tier-C tile fit on-chip. No size >= 2 satisfying the constraints means
// the caller should fall back one tier.
func localSizeFor(maxWorkGroupSize, numSpectra, pixelCount int, ctx device.Context, bands int, requireTile bool) (int, bool) {
	unit := numSpectra
	if requireTile {
		unit = pixelCount
	}
	if unit < 2 {
		return 0, false
	}
	upper := min(maxWorkGroupSize, unit)
	for size := upper; size >= 2; size-- {
		if unit%size != 0 {
			continue
		}
		if requireTile && !ctx.TileFits(size, bands, numSpectra) {
			continue
		}
		return size, true
	}
	return 0, false
}

func spectraFits(ctx device.Context, localSize, bands, numSpectra int) bool {
	const sizeofFloat32 = 4
	return numSpectra*bands*sizeofFloat32 <= ctx.OnChipMemBytes-localSize*bands*sizeofFloat32
}

// Submit runs the kernel variant named by plan and writes the per-pixel
// labels into labels.
func Submit(pool *workerpool.Pool, metric kernel.Metric, plan Plan, cube *image.Cube[float32], spectra []float32, bands, numSpectra int, labels []int32) {
	switch plan.Tier {
	case TierFlat:
		kernel.Flat(pool, metric, cube, spectra, bands, numSpectra, labels)
	case TierGrouped:
		kernel.Grouped(pool, metric, cube, spectra, bands, numSpectra, plan.LocalSize, labels)
	case TierCached:
		var cached []float32
		if plan.CacheSpectra {
			cached = kernel.LoadSpectraCache(spectra, plan.LocalSize)
		}
		kernel.Cached(pool, metric, cube, spectra, cached, bands, numSpectra, plan.LocalSize, labels)
	}
}
