// speccluster - Spectral clustering tool
package main

import (
	"fmt"
	"os"

	"github.com/abhagwat/speccluster/cmd/speccluster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
