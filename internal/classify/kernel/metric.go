// Package kernel implements the three execution tiers of the classification
// engine's C4 component: flat (atomic CAS reduction), grouped (barrier
// reduction), and grouped-with-cache (cooperative on-chip tile load).
package kernel

import "math"

// EuclideanInit is the worst-possible score for the Euclidean metric,
// positive infinity: any finite squared distance improves on it. Used to
// seed a running-best cell.
var EuclideanInit = float32(math.Inf(1))

// CCMInit is the worst-possible score for the Pearson metric: it is below
// the coefficient's attainable range of [-1, 1], so any real correlation,
// including a perfect anti-correlation of -1, improves on it.
const CCMInit = float32(-1.1)

// InitScore returns the sentinel initial score for metric. Which direction
// wins (lower for Euclidean, higher for CCM) is decided by Improves.
func InitScore(metric Metric) float32 {
	if metric == CCM {
		return CCMInit
	}
	return EuclideanInit
}

// Metric mirrors classify.Metric without importing the classify package,
// keeping kernel free of a dependency on its own caller.
type Metric int

const (
	Euclidean Metric = iota
	CCM
)

// Improves reports whether candidate strictly improves on current under
// metric: smaller for Euclidean, larger for CCM. Strict improvement is
// load-bearing for the tier-F CAS loop's livelock avoidance and tie-break
// semantics (§4.4, §9): a non-strict improvement must not attempt a CAS.
func Improves(metric Metric, candidate, current float32) bool {
	if metric == CCM {
		return candidate > current
	}
	return candidate < current
}

// EuclideanScore computes the squared Euclidean distance between pixel and
// spectrum, both length-bands slices.
func EuclideanScore(pixel, spectrum []float32) float32 {
	var sum float32
	for i := range pixel {
		d := pixel[i] - spectrum[i]
		sum += d * d
	}
	return sum
}

// PearsonScore computes the Pearson correlation coefficient between pixel
// and spectrum. A zero denominator (a constant, zero-variance spectrum)
// reports CCMInit, which can never win an argmax against a real coefficient.
func PearsonScore(pixel, spectrum []float32) float32 {
	n := float64(len(pixel))

	var sumP, sumS, sumPS, sumP2, sumS2 float64
	for i := range pixel {
		p, s := float64(pixel[i]), float64(spectrum[i])
		sumP += p
		sumS += s
		sumPS += p * s
		sumP2 += p * p
		sumS2 += s * s
	}

	numerator := n*sumPS - sumP*sumS
	denomP := n*sumP2 - sumP*sumP
	denomS := n*sumS2 - sumS*sumS
	denom := math.Sqrt(denomP * denomS)
	if denom == 0 {
		return CCMInit
	}
	return float32(numerator / denom)
}

// Score dispatches to the metric's scoring function.
func Score(metric Metric, pixel, spectrum []float32) float32 {
	if metric == CCM {
		return PearsonScore(pixel, spectrum)
	}
	return EuclideanScore(pixel, spectrum)
}
