package dispatch

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
	"github.com/jvillarasensio/hsiclass/internal/classify/device"
	"github.com/jvillarasensio/hsiclass/internal/classify/kernel"
)

func TestSelectTierPrefersCachedWhenItFits(t *testing.T) {
	ctx := device.Context{MaxWorkGroupSize: 4, OnChipMemBytes: 1 << 20}
	plan := SelectTier(ctx, nil, 8, 4, 16, logr.Discard())
	if plan.Tier != TierCached {
		t.Errorf("got tier %v, want cached", plan.Tier)
	}
}

func TestSelectTierDegradesToGroupedWhenTileTooSmall(t *testing.T) {
	ctx := device.Context{MaxWorkGroupSize: 4, OnChipMemBytes: 1}
	plan := SelectTier(ctx, nil, 8, 4, 16, logr.Discard())
	if plan.Tier != TierGrouped {
		t.Errorf("got tier %v, want grouped", plan.Tier)
	}
}

func TestSelectTierDegradesToFlatWhenUngrouped(t *testing.T) {
	ctx := device.Context{MaxWorkGroupSize: 1, OnChipMemBytes: 1 << 20}
	plan := SelectTier(ctx, nil, 8, 4, 16, logr.Discard())
	if plan.Tier != TierFlat {
		t.Errorf("got tier %v, want flat", plan.Tier)
	}
}

func TestSelectTierHonorsForcedTier(t *testing.T) {
	ctx := device.Context{MaxWorkGroupSize: 4, OnChipMemBytes: 1 << 20}
	forced := TierFlat
	plan := SelectTier(ctx, &forced, 8, 4, 16, logr.Discard())
	if plan.Tier != TierFlat {
		t.Errorf("got tier %v, want forced flat", plan.Tier)
	}
}

func TestLocalSizeForRequiresDivisorOfNumSpectra(t *testing.T) {
	ctx := device.Context{OnChipMemBytes: 1 << 20}
	size, ok := localSizeFor(5, 8, 100, ctx, 4, false)
	if !ok {
		t.Fatal("expected a valid local size")
	}
	if 8%size != 0 {
		t.Errorf("local size %d does not divide numSpectra 8", size)
	}
	if size != 4 {
		t.Errorf("got local size %d, want 4 (largest divisor <= 5)", size)
	}
}

func TestLocalSizeForFailsOnPrimeNumSpectraAboveMaxWorkGroupSize(t *testing.T) {
	ctx := device.Context{OnChipMemBytes: 1 << 20}
	_, ok := localSizeFor(5, 7, 100, ctx, 4, false)
	if ok {
		t.Error("expected no valid local size: 7 is prime and exceeds the work group size")
	}
}

func TestLocalSizeForFailsBelowTwo(t *testing.T) {
	ctx := device.Context{OnChipMemBytes: 1 << 20}
	_, ok := localSizeFor(1, 8, 100, ctx, 4, false)
	if ok {
		t.Error("expected no valid local size with max work group size 1")
	}
}

func TestSubmitFlatProducesLabelsForEveryPixel(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	raw := []float32{1, 0, 0, 1}
	cube := image.NewCubeFromBIL(raw, 1, 2, 2)
	spectra := []float32{1, 0, 0, 1}

	labels := make([]int32, cube.PixelCount())
	Submit(pool, kernel.Euclidean, Plan{Tier: TierFlat}, cube, spectra, 2, 2, labels)

	want := []int32{0, 1}
	for i, got := range labels {
		if got != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, got, want[i])
		}
	}
}
