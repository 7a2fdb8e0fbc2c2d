package kernel

import "github.com/jvillarasensio/hsiclass/hwy/contrib/matvec"

// ScoreAll scores pixel against every row of spectra (a dense
// [numSpectra, bands] matrix) in one call, writing into result (which must
// have length numSpectra). The rows are scored by matvec's batched
// EuclideanScores/PearsonScores, so a whole reference table is scored per
// call instead of one row at a time with EuclideanScore or PearsonScore.
func ScoreAll(metric Metric, pixel, spectra []float32, bands, numSpectra int, result []float32) {
	if metric == CCM {
		matvec.PearsonScores(spectra, numSpectra, bands, pixel, result)
		return
	}
	matvec.EuclideanScores(spectra, numSpectra, bands, pixel, result)
}

// BestOf scans scores (as produced by ScoreAll) for the winner under metric,
// accepting only strict improvements in increasing index order so ties
// resolve to the smallest index deterministically, the same tie-break
// ScoreAll's callers rely on when reducing across lanes or batches.
func BestOf(metric Metric, scores []float32) int32 {
	best := InitScore(metric)
	bestIdx := int32(-1)
	for i, s := range scores {
		if Improves(metric, s, best) {
			best = s
			bestIdx = int32(i)
		}
	}
	return bestIdx
}
