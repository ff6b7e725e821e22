// Package cluster groups spectra into clusters of near-duplicates using
// cosine similarity of their peak patterns. It provides an accelerated
// single-pass clusterer driven by a peak-bucket candidate index, and a
// quadratic baseline used to validate it.
package cluster

import (
	"math"

	"github.com/abhagwat/speccluster/pkg/core"
)

// Default thresholds, matching the reference implementation.
const (
	DefaultPeakTolerance       = 0.02
	DefaultPepmassThreshold    = 2.0
	DefaultSimilarityThreshold = 0.7
	DefaultMaxAnchorPeaks      = 5
)

// Config holds the clustering thresholds. Values are not validated;
// out-of-range thresholds degrade gracefully (a negative similarity
// threshold matches everything, a negative pepmass threshold nothing).
type Config struct {
	PeakTolerance       float64 // two peaks closer than this are the same feature
	PepmassThreshold    float64 // max precursor mass difference for a candidate pair
	SimilarityThreshold float64 // min cosine similarity for a cluster match
	MaxAnchorPeaks      int     // number of lowest-m/z peaks used for bucketing
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		PeakTolerance:       DefaultPeakTolerance,
		PepmassThreshold:    DefaultPepmassThreshold,
		SimilarityThreshold: DefaultSimilarityThreshold,
		MaxAnchorPeaks:      DefaultMaxAnchorPeaks,
	}
}

// PassesPepmass reports whether two spectra have precursor masses close
// enough to be cluster candidates. Cheap pre-check, always evaluated
// before the cosine similarity.
func PassesPepmass(a, b *core.Spectrum, threshold float64) bool {
	return math.Abs(a.Pepmass-b.Pepmass) < threshold
}

// cosineAccumulate runs the two-pointer merge over both sorted peak lists
// and returns the dot product and the two norm accumulators. It stops the
// moment either pointer runs out; trailing unmatched peaks of the longer
// side are not accumulated. That asymmetry is inherited from the reference
// implementation and kept for bit-for-bit comparable scores; see
// CosineSimilarityFull for the corrected variant.
func cosineAccumulate(a, b *core.Spectrum, tolerance float64) (dot, normA, normB float64, i, j int) {
	for i < len(a.Peaks) && j < len(b.Peaks) {
		pa, pb := a.Peaks[i], b.Peaks[j]
		switch {
		case math.Abs(pa.MZ-pb.MZ) < tolerance:
			dot += pa.Intensity * pb.Intensity
			normA += pa.Intensity * pa.Intensity
			normB += pb.Intensity * pb.Intensity
			i++
			j++
		case pa.MZ < pb.MZ:
			normA += pa.Intensity * pa.Intensity
			i++
		default:
			normB += pb.Intensity * pb.Intensity
			j++
		}
	}
	return dot, normA, normB, i, j
}

// CosineSimilarity computes the cosine similarity of two spectra over
// matched peaks. Both peak lists must be sorted by m/z ascending; that is
// the caller's responsibility. The result is NaN when either spectrum
// contributes a zero norm (no peaks, or all matched intensities zero).
func CosineSimilarity(a, b *core.Spectrum, tolerance float64) float64 {
	dot, normA, normB, _, _ := cosineAccumulate(a, b, tolerance)
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / math.Sqrt(normA*normB)
}

// CosineSimilarityFull is like CosineSimilarity but folds the trailing
// unmatched peaks of whichever side is not exhausted into that side's
// norm, removing the early-termination asymmetry. Scores are therefore
// less than or equal to CosineSimilarity for the same pair.
func CosineSimilarityFull(a, b *core.Spectrum, tolerance float64) float64 {
	dot, normA, normB, i, j := cosineAccumulate(a, b, tolerance)
	for ; i < len(a.Peaks); i++ {
		normA += a.Peaks[i].Intensity * a.Peaks[i].Intensity
	}
	for ; j < len(b.Peaks); j++ {
		normB += b.Peaks[j].Intensity * b.Peaks[j].Intensity
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / math.Sqrt(normA*normB)
}

// isMatch reports whether two spectra belong in the same cluster: the
// pepmass pre-check and the similarity threshold must both hold. Zero-norm
// spectra are rejected explicitly rather than through NaN comparison
// semantics, so a malformed spectrum never matches anything and always
// ends up as its own representative.
func isMatch(a, b *core.Spectrum, cfg Config) bool {
	if !PassesPepmass(a, b, cfg.PepmassThreshold) {
		return false
	}
	dot, normA, normB, _, _ := cosineAccumulate(a, b, cfg.PeakTolerance)
	if normA == 0 || normB == 0 {
		return false
	}
	return dot/math.Sqrt(normA*normB) > cfg.SimilarityThreshold
}
