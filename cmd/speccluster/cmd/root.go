// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Flags for cluster command
	inputFile           string
	outputFile          string
	useNaive            bool
	compare             bool
	peakTolerance       float64
	pepmassThreshold    float64
	similarityThreshold float64
	anchorPeaks         int
	topN                int
	cutoffPercent       float64
)

var rootCmd = &cobra.Command{
	Use:   "speccluster",
	Short: "speccluster - Spectral clustering tool",
	Long: `speccluster groups mass-spectrometry spectra into clusters of
near-duplicates using cosine similarity of their peak patterns.

The default algorithm is an approximate single-pass clusterer that indexes
cluster representatives by their lowest-m/z peaks and only scores spectra
against representatives sharing a peak bucket. A quadratic baseline is
available for validating its recall on small inputs.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(summarizeCmd)

	// Cluster command flags
	clusterCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input MGF file path (required)")
	clusterCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output SQLite database (optional)")
	clusterCmd.Flags().BoolVar(&useNaive, "naive", false, "Use the exhaustive quadratic baseline instead of the accelerated algorithm")
	clusterCmd.Flags().BoolVar(&compare, "compare", false, "Run both algorithms and report their agreement")
	clusterCmd.Flags().Float64Var(&peakTolerance, "peak-tolerance", 0.02, "Max m/z difference for two peaks to count as the same feature")
	clusterCmd.Flags().Float64Var(&pepmassThreshold, "pepmass-threshold", 2.0, "Max precursor mass difference for a candidate pair")
	clusterCmd.Flags().Float64Var(&similarityThreshold, "similarity-threshold", 0.7, "Min cosine similarity for a cluster match")
	clusterCmd.Flags().IntVar(&anchorPeaks, "anchor-peaks", 5, "Number of lowest-m/z peaks used for candidate indexing")
	clusterCmd.Flags().IntVar(&topN, "top-n", 0, "Keep only top N most intense peaks before clustering (0 = no limit)")
	clusterCmd.Flags().Float64Var(&cutoffPercent, "cutoff", 0, "Intensity cutoff as % of base peak (0 = no cutoff)")

	clusterCmd.MarkFlagRequired("in")
}
