package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhagwat/speccluster/pkg/cluster"
	"github.com/abhagwat/speccluster/pkg/core"
	"github.com/abhagwat/speccluster/pkg/filter"
	"github.com/abhagwat/speccluster/pkg/reader/mgf"
	"github.com/abhagwat/speccluster/pkg/writer/sqlite"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster spectra from an MGF file",
	Long: `Cluster spectra from an MGF file into groups of near-duplicates.

Examples:
  # Cluster with default thresholds
  speccluster cluster --in spectra.mgf

  # Write assignments to a SQLite database
  speccluster cluster --in spectra.mgf --out clusters.db

  # Validate the accelerated algorithm against the exhaustive baseline
  speccluster cluster --in spectra.mgf --compare

  # Tighten the similarity threshold and pre-filter low peaks
  speccluster cluster --in spectra.mgf --similarity-threshold 0.85 --cutoff 1`,
	RunE: runCluster,
}

func runCluster(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	fmt.Printf("Parsing file %s ...\n", inputFile)
	parseStart := time.Now()

	spectra, err := readSpectra(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	fmt.Printf("Parsing took %f seconds\n", time.Since(parseStart).Seconds())

	cfg := cluster.Config{
		PeakTolerance:       peakTolerance,
		PepmassThreshold:    pepmassThreshold,
		SimilarityThreshold: similarityThreshold,
		MaxAnchorPeaks:      anchorPeaks,
	}

	if compare {
		return runComparison(spectra, cfg)
	}

	algorithm := "accelerated"
	if useNaive {
		algorithm = "naive"
	}

	fmt.Printf("Clustering %d spectra ...\n", len(spectra))
	clusterStart := time.Now()

	var assignment []int
	if useNaive {
		assignment = cluster.ClusterNaive(spectra, cfg)
	} else {
		assignment = cluster.Cluster(spectra, cfg)
	}

	fmt.Printf("Clustering took %f seconds\n", time.Since(clusterStart).Seconds())

	numClusters := cluster.NumClusters(assignment)
	fmt.Printf("The %d spectra could be clustered into %d clusters\n", len(spectra), numClusters)

	if outputFile != "" {
		if err := writeResults(spectra, assignment, cfg, algorithm, numClusters); err != nil {
			return err
		}
		fmt.Printf("Output: %s\n", outputFile)
	}

	return nil
}

// readSpectra parses the input MGF file, applies the configured peak
// filters, and drops spectra that fail validation with a warning.
func readSpectra(path string) ([]*core.Spectrum, error) {
	inFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	filterConfig := &filter.Config{
		TopN:            topN,
		IntensityCutoff: cutoffPercent,
	}

	reader := mgf.NewReader(inFile)

	var spectra []*core.Spectrum
	skipped := 0

	for reader.Next() {
		spec := reader.Spectrum()
		spec.SourceFile = path

		filter.RemoveZeroIntensityPeaks(spec)
		filterConfig.Apply(spec)

		if err := spec.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid spectrum %s: %v\n", spec.Name(), err)
			skipped++
			continue
		}

		spectra = append(spectra, spec)
	}

	if err := reader.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		fmt.Printf("Skipped: %d spectra (validation errors)\n", skipped)
	}

	return spectra, nil
}

// runComparison runs both assigners and reports where the accelerated
// index loses recall against the exhaustive baseline.
func runComparison(spectra []*core.Spectrum, cfg cluster.Config) error {
	fmt.Printf("Clustering %d spectra with both algorithms ...\n", len(spectra))

	start := time.Now()
	accelerated := cluster.Cluster(spectra, cfg)
	acceleratedTime := time.Since(start)

	start = time.Now()
	naive := cluster.ClusterNaive(spectra, cfg)
	naiveTime := time.Since(start)

	agree := 0
	for i := range accelerated {
		if accelerated[i] == naive[i] {
			agree++
		}
	}

	fmt.Printf("Accelerated: %d clusters in %f seconds\n", cluster.NumClusters(accelerated), acceleratedTime.Seconds())
	fmt.Printf("Naive:       %d clusters in %f seconds\n", cluster.NumClusters(naive), naiveTime.Seconds())
	if len(accelerated) > 0 {
		fmt.Printf("Agreement: %d/%d assignments (%.2f%%)\n",
			agree, len(accelerated), 100*float64(agree)/float64(len(accelerated)))
	}

	return nil
}

func writeResults(spectra []*core.Spectrum, assignment []int, cfg cluster.Config, algorithm string, numClusters int) error {
	writer, err := sqlite.NewWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}

	for i, spec := range spectra {
		if err := writer.WriteSpectrum(spec, assignment[i]); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write spectrum %s: %w", spec.Name(), err)
		}
	}

	return writer.Finalize(sqlite.RunInfo{
		SourceFile:          inputFile,
		NumSpectra:          len(spectra),
		NumClusters:         numClusters,
		Algorithm:           algorithm,
		PeakTolerance:       cfg.PeakTolerance,
		PepmassThreshold:    cfg.PepmassThreshold,
		SimilarityThreshold: cfg.SimilarityThreshold,
	})
}
