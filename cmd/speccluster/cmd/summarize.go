package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhagwat/speccluster/pkg/reader/mgf"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize MGF file contents",
	Long:  `Print summary statistics about an MGF file: spectrum count, peak counts, and pepmass / m-z ranges.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	inFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader := mgf.NewReader(inFile)

	count := 0
	totalPeaks := 0
	minPeaks, maxPeaks := math.MaxInt, 0
	minPepmass, maxPepmass := math.Inf(1), math.Inf(-1)
	minMZ, maxMZ := math.Inf(1), math.Inf(-1)

	for reader.Next() {
		spec := reader.Spectrum()
		count++
		totalPeaks += len(spec.Peaks)

		if len(spec.Peaks) < minPeaks {
			minPeaks = len(spec.Peaks)
		}
		if len(spec.Peaks) > maxPeaks {
			maxPeaks = len(spec.Peaks)
		}

		minPepmass = math.Min(minPepmass, spec.Pepmass)
		maxPepmass = math.Max(maxPepmass, spec.Pepmass)

		for _, peak := range spec.Peaks {
			minMZ = math.Min(minMZ, peak.MZ)
			maxMZ = math.Max(maxMZ, peak.MZ)
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Spectra: %d\n", count)
	if count == 0 {
		return nil
	}

	fmt.Printf("Peaks per spectrum: min %d, max %d, mean %.1f\n",
		minPeaks, maxPeaks, float64(totalPeaks)/float64(count))
	fmt.Printf("Pepmass range: %.4f - %.4f\n", minPepmass, maxPepmass)
	if totalPeaks > 0 {
		fmt.Printf("Fragment m/z range: %.4f - %.4f\n", minMZ, maxMZ)
	}

	return nil
}
