package cluster

import (
	"math"
	"testing"

	"github.com/abhagwat/speccluster/pkg/core"
)

func makeSpectrum(pepmass float64, mzs, intensities []float64) *core.Spectrum {
	peaks := make([]core.Peak, len(mzs))
	for i := range mzs {
		peaks[i] = core.Peak{MZ: mzs[i], Intensity: intensities[i]}
	}
	return &core.Spectrum{Pepmass: pepmass, Peaks: peaks}
}

func TestCosineSimilaritySelf(t *testing.T) {
	spec := makeSpectrum(500, []float64{100.0, 200.0, 300.5}, []float64{1.0, 2.5, 0.5})

	got := CosineSimilarity(spec, spec, DefaultPeakTolerance)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity(a, a) = %v, want 1.0", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		a, b      *core.Spectrum
		want      float64
		tolerance float64
	}{
		{
			name: "identical single peak",
			a:    makeSpectrum(500, []float64{100.0}, []float64{2.0}),
			b:    makeSpectrum(500, []float64{100.0}, []float64{3.0}),
			want: 1.0,
		},
		{
			name: "disjoint peaks",
			a:    makeSpectrum(500, []float64{100.0, 200.0}, []float64{1.0, 1.0}),
			b:    makeSpectrum(500, []float64{150.0, 250.0}, []float64{1.0, 1.0}),
			want: 0.0,
		},
		{
			name: "peaks within tolerance match",
			a:    makeSpectrum(500, []float64{100.000}, []float64{1.0}),
			b:    makeSpectrum(500, []float64{100.015}, []float64{1.0}),
			want: 1.0,
		},
		{
			name: "peaks outside tolerance do not match",
			a:    makeSpectrum(500, []float64{100.00}, []float64{1.0}),
			b:    makeSpectrum(500, []float64{100.05}, []float64{1.0}),
			want: 0.0,
		},
		{
			// Unmatched peaks precede the matched one so both norms
			// see their unmatched contribution before the merge ends.
			name: "half overlap",
			a:    makeSpectrum(500, []float64{100.0, 200.0}, []float64{1.0, 1.0}),
			b:    makeSpectrum(500, []float64{150.0, 200.0}, []float64{1.0, 1.0}),
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b, DefaultPeakTolerance)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityZeroNorm(t *testing.T) {
	empty := makeSpectrum(500, nil, nil)
	zero := makeSpectrum(500, []float64{100.0}, []float64{0.0})
	normal := makeSpectrum(500, []float64{100.0}, []float64{1.0})

	for _, spec := range []*core.Spectrum{empty, zero} {
		if got := CosineSimilarity(spec, normal, DefaultPeakTolerance); !math.IsNaN(got) {
			t.Errorf("CosineSimilarity with zero norm = %v, want NaN", got)
		}
		// Zero-norm spectra must never count as a match, by explicit
		// check rather than NaN comparison semantics.
		if isMatch(spec, normal, DefaultConfig()) {
			t.Error("isMatch() = true for zero-norm spectrum, want false")
		}
	}
}

// The two-pointer merge stops when either side is exhausted; trailing
// peaks of the other side are excluded from its norm. The Full variant
// accumulates them.
func TestCosineSimilarityEarlyTermination(t *testing.T) {
	short := makeSpectrum(500, []float64{100.0}, []float64{1.0})
	long := makeSpectrum(500, []float64{100.0, 200.0}, []float64{1.0, 1.0})

	if got := CosineSimilarity(short, long, DefaultPeakTolerance); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity() = %v, want 1.0 (trailing peak excluded)", got)
	}

	want := 1.0 / math.Sqrt(2)
	if got := CosineSimilarityFull(short, long, DefaultPeakTolerance); math.Abs(got-want) > 1e-9 {
		t.Errorf("CosineSimilarityFull() = %v, want %v (trailing peak counted)", got, want)
	}
}

func TestPassesPepmass(t *testing.T) {
	tests := []struct {
		name     string
		pepmassA float64
		pepmassB float64
		want     bool
	}{
		{"identical", 500.0, 500.0, true},
		{"just inside threshold", 500.0, 501.999, true},
		{"at threshold", 500.0, 502.0, false},
		{"beyond threshold", 500.0, 510.0, false},
		{"inside threshold below", 500.0, 498.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := makeSpectrum(tt.pepmassA, []float64{100.0}, []float64{1.0})
			b := makeSpectrum(tt.pepmassB, []float64{100.0}, []float64{1.0})
			if got := PassesPepmass(a, b, DefaultPepmassThreshold); got != tt.want {
				t.Errorf("PassesPepmass() = %v, want %v", got, tt.want)
			}
		})
	}
}
