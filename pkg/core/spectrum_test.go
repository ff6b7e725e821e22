package core

import (
	"math"
	"testing"
)

func TestSpectrumValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    *Spectrum
		wantErr bool
	}{
		{
			name: "valid spectrum",
			spec: &Spectrum{
				Pepmass: 400.5,
				Charge:  2,
				Peaks: []Peak{
					{MZ: 100.0, Intensity: 1000.0},
					{MZ: 200.0, Intensity: 2000.0},
				},
			},
			wantErr: false,
		},
		{
			name: "missing pepmass",
			spec: &Spectrum{
				Peaks: []Peak{
					{MZ: 100.0, Intensity: 1000.0},
				},
			},
			wantErr: true,
		},
		{
			name: "no peaks",
			spec: &Spectrum{
				Pepmass: 400.5,
				Peaks:   []Peak{},
			},
			wantErr: true,
		},
		{
			name: "unsorted peaks",
			spec: &Spectrum{
				Pepmass: 400.5,
				Peaks: []Peak{
					{MZ: 200.0, Intensity: 2000.0},
					{MZ: 100.0, Intensity: 1000.0},
				},
			},
			wantErr: true,
		},
		{
			name: "NaN m/z",
			spec: &Spectrum{
				Pepmass: 400.5,
				Peaks: []Peak{
					{MZ: math.NaN(), Intensity: 1000.0},
				},
			},
			wantErr: true,
		},
		{
			name: "negative intensity",
			spec: &Spectrum{
				Pepmass: 400.5,
				Peaks: []Peak{
					{MZ: 100.0, Intensity: -1.0},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSortPeaks(t *testing.T) {
	spec := &Spectrum{
		Peaks: []Peak{
			{MZ: 300.0, Intensity: 100.0},
			{MZ: 100.0, Intensity: 200.0},
			{MZ: 200.0, Intensity: 150.0},
		},
	}

	spec.SortPeaks()

	expected := []float64{100.0, 200.0, 300.0}
	for i, peak := range spec.Peaks {
		if peak.MZ != expected[i] {
			t.Errorf("Peak %d: expected m/z %.1f, got %.1f", i, expected[i], peak.MZ)
		}
	}

	if !spec.ArePeaksSorted() {
		t.Error("Expected peaks to be sorted after SortPeaks()")
	}
}

func TestBasePeak(t *testing.T) {
	spec := &Spectrum{
		Peaks: []Peak{
			{MZ: 100.0, Intensity: 200.0},
			{MZ: 200.0, Intensity: 900.0},
			{MZ: 300.0, Intensity: 150.0},
		},
	}

	base := spec.BasePeak()
	if base.MZ != 200.0 || base.Intensity != 900.0 {
		t.Errorf("BasePeak() = %+v, want {MZ: 200, Intensity: 900}", base)
	}

	empty := &Spectrum{}
	if base := empty.BasePeak(); base.Intensity != 0 {
		t.Errorf("BasePeak() on empty spectrum = %+v, want zero peak", base)
	}
}

func TestSpectrumName(t *testing.T) {
	withTitle := &Spectrum{Title: "scan=42", Pepmass: 500.0}
	if got := withTitle.Name(); got != "scan=42" {
		t.Errorf("Name() = %s, want scan=42", got)
	}

	withoutTitle := &Spectrum{Pepmass: 500.0}
	if got := withoutTitle.Name(); got != "pepmass=500.0000" {
		t.Errorf("Name() = %s, want pepmass=500.0000", got)
	}
}
