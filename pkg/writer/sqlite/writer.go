// Package sqlite provides SQLite database writing for clustering results
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/abhagwat/speccluster/pkg/core"
	_ "github.com/mattn/go-sqlite3"
)

// Date format for RunTable (ISO 8601)
const runDateFormat = "2006-01-02"

// Writer handles writing clustered spectra to SQLite database files
type Writer struct {
	db           *sql.DB
	outputPath   string
	spectrumStmt *sql.Stmt
	spectrumID   int
}

// RunInfo describes one clustering run, written to RunTable by Finalize.
type RunInfo struct {
	SourceFile          string
	NumSpectra          int
	NumClusters         int
	Algorithm           string // accelerated or naive
	PeakTolerance       float64
	PepmassThreshold    float64
	SimilarityThreshold float64
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		spectrumID: 1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SpectrumTable (
		SpectrumId INTEGER PRIMARY KEY,
		Title TEXT,
		Pepmass REAL,
		Charge INTEGER,
		NumPeaks INTEGER,
		PeaksMZ BLOB,
		PeaksIntensity BLOB,
		ClusterId INTEGER
	);

	CREATE TABLE IF NOT EXISTS RunTable (
		RunId INTEGER PRIMARY KEY,
		CreationDate TEXT,
		SourceFile TEXT,
		NumSpectra INTEGER,
		NumClusters INTEGER,
		Algorithm TEXT,
		PeakTolerance REAL,
		PepmassThreshold REAL,
		SimilarityThreshold REAL
	);

	CREATE INDEX IF NOT EXISTS idx_spectrum_cluster ON SpectrumTable(ClusterId);
	`

	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares the insert statements used per spectrum
func (w *Writer) prepareStatements() error {
	stmt, err := w.db.Prepare(`
		INSERT INTO SpectrumTable (SpectrumId, Title, Pepmass, Charge, NumPeaks, PeaksMZ, PeaksIntensity, ClusterId)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare spectrum statement: %w", err)
	}
	w.spectrumStmt = stmt

	return nil
}

// WriteSpectrum writes one spectrum together with its cluster assignment.
// clusterID is the input index of the spectrum's cluster representative.
func (w *Writer) WriteSpectrum(spec *core.Spectrum, clusterID int) error {
	_, err := w.spectrumStmt.Exec(
		w.spectrumID,
		spec.Title,
		spec.Pepmass,
		spec.Charge,
		len(spec.Peaks),
		encodePeaksFloat64(spec.Peaks, true),
		encodePeaksFloat64(spec.Peaks, false),
		clusterID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert spectrum: %w", err)
	}

	w.spectrumID++
	return nil
}

// encodePeaksFloat64 encodes peak data as little-endian float64 blob
func encodePeaksFloat64(peaks []core.Peak, useMZ bool) []byte {
	buf := make([]byte, len(peaks)*8)
	for i, peak := range peaks {
		var value float64
		if useMZ {
			value = peak.MZ
		} else {
			value = peak.Intensity
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(value))
	}
	return buf
}

// Finalize writes the run summary and closes the database
func (w *Writer) Finalize(run RunInfo) error {
	_, err := w.db.Exec(`
		INSERT INTO RunTable (CreationDate, SourceFile, NumSpectra, NumClusters, Algorithm, PeakTolerance, PepmassThreshold, SimilarityThreshold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, time.Now().Format(runDateFormat), run.SourceFile, run.NumSpectra, run.NumClusters,
		run.Algorithm, run.PeakTolerance, run.PepmassThreshold, run.SimilarityThreshold)
	if err != nil {
		return fmt.Errorf("failed to insert run summary: %w", err)
	}

	return w.Close()
}

// Close closes the prepared statements and the database connection
func (w *Writer) Close() error {
	if w.spectrumStmt != nil {
		w.spectrumStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
