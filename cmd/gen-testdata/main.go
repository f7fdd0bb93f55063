package main

import (
	"context"
	"flag"
	"os"

	"github.com/clinops/icfcheck/internal/testdata"
	"github.com/clinops/icfcheck/pkg/logger"
)

// Default generation parameters.
const (
	defaultParticipants = 200
	defaultVersions     = 3
	defaultSeed         = 1
	defaultStartYear    = 2020
)

func main() {
	var (
		participants = flag.Int("participants", defaultParticipants, "Number of participants to generate")
		versions     = flag.Int("versions", defaultVersions, "Number of catalog versions")
		outDir       = flag.String("out-dir", "testdata", "Directory for the generated files")
		format       = flag.String("format", "csv", "Output format: csv or xlsx")
		seed         = flag.Int64("seed", defaultSeed, "RNG seed; identical seeds reproduce identical fixtures")
		startYear    = flag.Int("start-year", defaultStartYear, "Year the first catalog version becomes effective")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	_, err := testdata.Run(ctx, testdata.Config{
		Participants: *participants,
		Versions:     *versions,
		OutDir:       *outDir,
		Format:       *format,
		Seed:         *seed,
		StartYear:    *startYear,
	})
	if err != nil {
		logger.Get().Error(ctx, "fixture generation failed", logger.Err(err))
		os.Exit(1)
	}
}
