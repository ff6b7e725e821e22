package cluster

import "github.com/abhagwat/speccluster/pkg/core"

// NewAssignment returns a cluster assignment array of size n where every
// spectrum starts as its own representative. assignment[i] holds the index
// of spectrum i's representative; a representative's slot holds its own
// index. The array is a one-hop structure, not a union-find: every
// non-representative slot points directly at a spectrum that is a
// representative, so lookups never follow a chain. Both assigners below
// maintain that invariant by only ever writing representative indices.
func NewAssignment(n int) []int {
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = i
	}
	return assignment
}

// NumClusters returns the number of distinct clusters in an assignment.
func NumClusters(assignment []int) int {
	distinct := make(map[int]struct{}, len(assignment))
	for _, rep := range assignment {
		distinct[rep] = struct{}{}
	}
	return len(distinct)
}

// Cluster assigns each spectrum to a cluster using the accelerated
// single-pass algorithm: for each spectrum in input order, the peak-bucket
// index supplies the representatives that share an anchor-peak bucket with
// it; the first candidate passing the pepmass and similarity checks
// becomes its representative, otherwise the spectrum is registered as a
// new representative itself.
//
// The pass is greedy and online: a spectrum is only ever compared against
// previously established representatives, clusters are never merged after
// the fact, and the result depends on input order. Candidates the index
// misses (similar spectra sharing none of their anchor-peak buckets) are
// the recall cost paid for skipping the quadratic scan; ClusterNaive
// measures that cost.
func Cluster(spectra []*core.Spectrum, cfg Config) []int {
	assignment := NewAssignment(len(spectra))
	index := newPeakBucketIndex(cfg.MaxAnchorPeaks)

	for i, spec := range spectra {
		matched := false
		for _, candidate := range index.candidates(spec) {
			if isMatch(spec, spectra[candidate], cfg) {
				assignment[i] = candidate
				matched = true
				break
			}
		}
		if !matched {
			index.register(i, spec)
		}
	}

	return assignment
}

// ClusterNaive is the exhaustive baseline: each spectrum is compared
// against the representative of every earlier spectrum, deduplicating so
// each representative is tried once. First match wins, same as Cluster.
// Quadratic; intended as a correctness and recall oracle, not for large
// inputs.
func ClusterNaive(spectra []*core.Spectrum, cfg Config) []int {
	assignment := NewAssignment(len(spectra))

	for i := 1; i < len(spectra); i++ {
		tried := make(map[int]struct{})
		for j := 0; j < i; j++ {
			// assignment[j] is already fully resolved to a
			// representative: representatives are written before
			// they are ever read.
			candidate := assignment[j]
			if _, ok := tried[candidate]; ok {
				continue
			}
			if isMatch(spectra[i], spectra[candidate], cfg) {
				assignment[i] = candidate
				break
			}
			tried[candidate] = struct{}{}
		}
	}

	return assignment
}
