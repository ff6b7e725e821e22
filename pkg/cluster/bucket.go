package cluster

import (
	"math"
	"sort"

	"github.com/abhagwat/speccluster/pkg/core"
)

// PeakBucket quantizes a peak m/z into its bucket key: the m/z scaled to
// integer hundredths and rounded down to the nearest even value, so the
// peak axis is partitioned into fixed 0.02-wide intervals starting on even
// hundredths. 50.01 lies in [50.00, 50.02) and maps to 5000; 50.03 maps
// to 5002. The bucket grid does not mirror the symmetric peak tolerance
// window, so two peaks within tolerance can straddle a bucket boundary —
// an accepted source of missed candidates, not a correctness requirement.
func PeakBucket(mz float64) int {
	return int(math.Floor(mz*100)) / 2 * 2
}

// peakBucketIndex maps bucket keys to the representatives that have one of
// their anchor peaks in that bucket. Anchor peaks are the first
// min(anchors, len(peaks)) peaks in m/z order, i.e. the lowest-m/z peaks.
// The index grows monotonically and is owned by a single clustering pass.
type peakBucketIndex struct {
	buckets map[int][]int
	anchors int
}

func newPeakBucketIndex(anchors int) *peakBucketIndex {
	return &peakBucketIndex{
		buckets: make(map[int][]int),
		anchors: anchors,
	}
}

func (ix *peakBucketIndex) anchorPeaks(spec *core.Spectrum) []core.Peak {
	if len(spec.Peaks) <= ix.anchors {
		return spec.Peaks
	}
	return spec.Peaks[:ix.anchors]
}

// register records idx as a representative under each of its anchor-peak
// buckets. Only called for spectra that become new representatives.
func (ix *peakBucketIndex) register(idx int, spec *core.Spectrum) {
	for _, peak := range ix.anchorPeaks(spec) {
		key := PeakBucket(peak.MZ)
		ix.buckets[key] = append(ix.buckets[key], idx)
	}
}

// candidates returns the deduplicated union of the representatives found
// under the spectrum's anchor-peak buckets, in ascending index order so a
// clustering run is reproducible. A spectrum whose anchor peaks all land
// in empty buckets gets no candidates regardless of true similarity.
func (ix *peakBucketIndex) candidates(spec *core.Spectrum) []int {
	seen := make(map[int]struct{})
	for _, peak := range ix.anchorPeaks(spec) {
		for _, idx := range ix.buckets[PeakBucket(peak.MZ)] {
			seen[idx] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
