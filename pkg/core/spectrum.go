// Package core provides the spectrum model and validation logic shared by
// the readers, filters, and clustering code.
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Spectrum represents a single mass spectrum with its precursor mass and
// fragment peaks.
type Spectrum struct {
	Title   string  // TITLE field, if present
	Pepmass float64 // Precursor m/z
	Charge  int     // Precursor charge state (0 if unknown)
	Peaks   []Peak  // Fragment peaks, sorted by m/z ascending

	// Internal tracking
	SourceFile   string
	SourceFormat string // mgf
}

// Peak represents a single m/z, intensity pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// ValidationError represents an error found during spectrum validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a spectrum meets all requirements for clustering.
func (s *Spectrum) Validate() error {
	var errs []string

	if s.Pepmass <= 0 {
		errs = append(errs, "pepmass must be positive")
	}
	if len(s.Peaks) == 0 {
		errs = append(errs, "at least one peak is required")
	}

	for i, peak := range s.Peaks {
		if math.IsNaN(peak.MZ) || math.IsInf(peak.MZ, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid m/z", i))
		}
		if math.IsNaN(peak.Intensity) || math.IsInf(peak.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid intensity", i))
		}
		if peak.MZ <= 0 {
			errs = append(errs, fmt.Sprintf("peak %d m/z must be positive", i))
		}
		if peak.Intensity < 0 {
			errs = append(errs, fmt.Sprintf("peak %d intensity must be non-negative", i))
		}
	}

	if !s.ArePeaksSorted() {
		errs = append(errs, "peaks must be sorted by m/z")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Spectrum",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// ArePeaksSorted checks if peaks are sorted by m/z in ascending order.
func (s *Spectrum) ArePeaksSorted() bool {
	for i := 1; i < len(s.Peaks); i++ {
		if s.Peaks[i].MZ < s.Peaks[i-1].MZ {
			return false
		}
	}
	return true
}

// SortPeaks sorts peaks by m/z in ascending order.
func (s *Spectrum) SortPeaks() {
	sort.Slice(s.Peaks, func(i, j int) bool {
		return s.Peaks[i].MZ < s.Peaks[j].MZ
	})
}

// BasePeak returns the most intense peak, or a zero Peak if the spectrum
// has no peaks.
func (s *Spectrum) BasePeak() Peak {
	var base Peak
	for _, peak := range s.Peaks {
		if peak.Intensity > base.Intensity {
			base = peak
		}
	}
	return base
}

// Name returns a display name for the spectrum, falling back to the
// pepmass when no title is present.
func (s *Spectrum) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("pepmass=%.4f", s.Pepmass)
}
