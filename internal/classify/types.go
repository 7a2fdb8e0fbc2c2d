// Package classify implements the heterogeneous pixel classification engine:
// per-pixel nearest-reference-spectrum search over a hyperspectral cube,
// executed as data-parallel kernels across three cooperation tiers.
package classify

// Metric selects which similarity function the classification kernels use.
type Metric int

const (
	// Euclidean selects squared Euclidean distance, argmin.
	Euclidean Metric = iota
	// CCM selects the Pearson correlation coefficient, argmax.
	CCM
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case CCM:
		return "ccm"
	default:
		return "unknown"
	}
}

// ParseMetric maps a configuration string onto a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "euclidean", "EUCLIDEAN":
		return Euclidean, nil
	case "ccm", "CCM":
		return CCM, nil
	default:
		return 0, errInvalidMetric(s)
	}
}

// DeviceClass selects which compute device the context attempts to realize.
// This implementation only ever realizes CPU, but the other values and the
// fallback-with-warning behaviour they trigger are real and tested.
type DeviceClass int

const (
	DeviceDefault DeviceClass = iota
	DeviceCPU
	DeviceGPU
	DeviceAccelerator
)

func (d DeviceClass) String() string {
	switch d {
	case DeviceDefault:
		return "default"
	case DeviceCPU:
		return "cpu"
	case DeviceGPU:
		return "gpu"
	case DeviceAccelerator:
		return "accelerator"
	default:
		return "unknown"
	}
}

// ParseDeviceClass maps a configuration string onto a DeviceClass.
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch s {
	case "", "default", "DEFAULT":
		return DeviceDefault, nil
	case "cpu", "CPU":
		return DeviceCPU, nil
	case "gpu", "GPU":
		return DeviceGPU, nil
	case "accelerator", "ACCELERATOR", "accel", "ACCEL":
		return DeviceAccelerator, nil
	default:
		return 0, errInvalidDeviceClass(s)
	}
}

// ResidencyMode selects how host buffers are made visible to the kernels.
type ResidencyMode int

const (
	// Borrowed wraps the caller's buffer without copying.
	Borrowed ResidencyMode = iota
	// Owned copies the caller's buffer into an engine-owned allocation.
	Owned
)

func (r ResidencyMode) String() string {
	if r == Owned {
		return "owned"
	}
	return "borrowed"
}

// KernelTier selects the level of on-chip cooperation a kernel variant uses.
type KernelTier int

const (
	// TierFlat: one work-item per (pixel, spectrum) pair, atomic CAS reduction.
	TierFlat KernelTier = iota
	// TierGrouped: one work-group per pixel, barrier reduction.
	TierGrouped
	// TierCached: TierGrouped plus a cooperatively loaded on-chip tile.
	TierCached
)

func (t KernelTier) String() string {
	switch t {
	case TierFlat:
		return "flat"
	case TierGrouped:
		return "grouped"
	case TierCached:
		return "cached"
	default:
		return "unknown"
	}
}

// SpectraTable holds every reference spectrum resampled onto the cube's band
// grid, dense row-major like image.Cube's backing storage.
type SpectraTable struct {
	Names []string
	Data  []float32
	Bands int
}

// NumSpectra returns the number of reference spectra in the table.
func (t SpectraTable) NumSpectra() int {
	if t.Bands == 0 {
		return 0
	}
	return len(t.Data) / t.Bands
}

// Row returns the contiguous Bands-length spectrum for reference index i.
func (t SpectraTable) Row(i int) []float32 {
	return t.Data[i*t.Bands : (i+1)*t.Bands]
}

// Config carries every option the engine and dispatcher need for one
// classification run.
type Config struct {
	Metric        Metric
	Device        DeviceClass
	Residency     ResidencyMode
	ForceTier     *KernelTier // nil: auto-select via device.Context
	OnChipMemHint int         // bytes; 0 selects the default estimate
}

// TimingRecord reports, in milliseconds, how long each pipeline stage took.
type TimingRecord struct {
	InitMS        float64
	StagingMS     float64
	ConditioningMS float64
	ClassifyMS    float64
	DeliveryMS    float64
	TotalMS       float64
}

// Result is the outcome of one classification run.
type Result struct {
	Labels      []int32
	Timing      TimingRecord
	Fingerprint uint64
	RunID       string
	Tier        KernelTier
}
