// Command genfixtures writes a synthetic dataset and prediction artifacts
// for local development of the dashboard.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/aqio/aqdash/internal/fixtures"
	"github.com/aqio/aqdash/pkg/logger"
)

const defaultRowsPerStation = 500

func main() {
	var (
		outDir = flag.String("out", "testdata", "Output directory for fixture files")
		rows   = flag.Int("rows", defaultRowsPerStation, "Rows per station in the dataset")
		seed   = flag.Int64("seed", 42, "Random seed for reproducible output")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := fixtures.Config{
		OutDir:      *outDir,
		RowsPerSite: *rows,
		Seed:        *seed,
	}
	if err := fixtures.Generate(context.Background(), cfg); err != nil {
		os.Stderr.WriteString("fixture generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
