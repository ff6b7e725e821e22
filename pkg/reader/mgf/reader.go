// Package mgf provides a streaming reader for MGF (Mascot Generic Format)
// spectral files.
package mgf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhagwat/speccluster/pkg/core"
)

// Reader provides streaming access to MGF format files
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	currentSpec *core.Spectrum
	err         error
}

// NewReader creates a new MGF reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next spectrum. Returns false when no more spectra or error.
func (r *Reader) Next() bool {
	r.currentSpec = nil

	spec, err := r.readSpectrum()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.currentSpec = spec
	return true
}

// Spectrum returns the current spectrum
func (r *Reader) Spectrum() *core.Spectrum {
	return r.currentSpec
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readSpectrum reads a single BEGIN IONS / END IONS block
func (r *Reader) readSpectrum() (*core.Spectrum, error) {
	spec := &core.Spectrum{
		SourceFormat: "mgf",
		Peaks:        []core.Peak{},
	}

	inIons := false

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip comments and empty lines between entries
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inIons {
			if line == "BEGIN IONS" {
				inIons = true
			}
			// Anything outside a block (global parameters) is ignored
			continue
		}

		if line == "END IONS" {
			return spec, nil
		}

		if idx := strings.Index(line, "="); idx > 0 {
			if err := r.parseHeader(spec, line[:idx], line[idx+1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			continue
		}

		peak, err := r.parsePeak(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}
		spec.Peaks = append(spec.Peaks, peak)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	if inIons {
		return nil, fmt.Errorf("line %d: unexpected end of file inside BEGIN IONS block", r.lineNum)
	}

	return nil, io.EOF
}

// parseHeader parses a KEY=value line inside an ions block
func (r *Reader) parseHeader(spec *core.Spectrum, key, value string) error {
	switch strings.ToUpper(key) {
	case "PEPMASS":
		// PEPMASS may carry an intensity after the mass; only the
		// first field matters
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("empty PEPMASS value")
		}
		mass, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("invalid PEPMASS value '%s': %w", fields[0], err)
		}
		spec.Pepmass = mass

	case "CHARGE":
		// Format: "2+", "3-", or a bare integer
		v := strings.TrimSpace(value)
		sign := 1
		if strings.HasSuffix(v, "+") {
			v = strings.TrimSuffix(v, "+")
		} else if strings.HasSuffix(v, "-") {
			v = strings.TrimSuffix(v, "-")
			sign = -1
		}
		charge, err := strconv.Atoi(v)
		if err == nil {
			spec.Charge = sign * charge
		}

	case "TITLE":
		spec.Title = value
	}

	// Unknown keys (SCANS, RTINSECONDS, ...) are ignored
	return nil
}

// parsePeak parses a single peak line (format: "mz intensity")
func (r *Reader) parsePeak(line string) (core.Peak, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Peak{}, fmt.Errorf("invalid peak format, expected at least 2 fields")
	}

	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid m/z value: %w", err)
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid intensity value: %w", err)
	}

	return core.Peak{MZ: mz, Intensity: intensity}, nil
}

// ReadAll reads every spectrum from r into a slice, in file order.
func ReadAll(r io.Reader) ([]*core.Spectrum, error) {
	reader := NewReader(r)
	var spectra []*core.Spectrum
	for reader.Next() {
		spectra = append(spectra, reader.Spectrum())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return spectra, nil
}
