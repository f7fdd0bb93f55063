package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/clinops/icfcheck/internal/adapters/render"
	"github.com/clinops/icfcheck/internal/adapters/tabular"
	"github.com/clinops/icfcheck/internal/app"
	"github.com/clinops/icfcheck/internal/config"
	"github.com/clinops/icfcheck/internal/domain/catalog"
	"github.com/clinops/icfcheck/internal/domain/report"
	"github.com/clinops/icfcheck/pkg/logger"
	"github.com/clinops/icfcheck/pkg/metrics"
)

// options collects the command line flags of one report run.
type options struct {
	catalogPath  string
	consentsPath string
	eosPath      string
	mappingPath  string
	outPath      string
	format       string
	mode         string
	workers      int
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.catalogPath, "catalog", "", "version catalog file (xlsx or csv)")
	flag.StringVar(&o.consentsPath, "consents", "", "consent signature export (xlsx or csv)")
	flag.StringVar(&o.eosPath, "eos", "", "end-of-study export (xlsx or csv)")
	flag.StringVar(&o.mappingPath, "mapping", "", "column mapping file (yaml), overrides config")
	flag.StringVar(&o.outPath, "out", "", "output file; default derived from the run id")
	flag.StringVar(&o.format, "format", "", "output format: docx or csv, overrides config")
	flag.StringVar(&o.mode, "mode", "", "version lookup mode: interval or tied-latest, overrides config")
	flag.IntVar(&o.workers, "workers", 0, "reconciliation worker count, overrides config")
	flag.Parse()
	return o
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, parseFlags()); err != nil {
		logger.Get().Error(ctx, "report run failed", logger.Err(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options) error {
	started := time.Now()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Err(err))
		_ = logger.SetLevelString("info")
	}
	applyOverrides(cfg, o)

	if o.catalogPath == "" || o.consentsPath == "" || o.eosPath == "" {
		flag.Usage()
		return fmt.Errorf("flags -catalog, -consents, and -eos are required")
	}

	runID := uuid.NewString()
	log.Info(ctx, "starting report run",
		logger.String("run_id", runID),
		logger.String("lookup_mode", cfg.LookupMode),
		logger.String("format", cfg.OutputFormat),
	)

	mapping, err := tabular.LoadMapping(cfg.MappingFile)
	if err != nil {
		return fmt.Errorf("loading column mapping: %w", err)
	}

	inputs, err := loadInputs(ctx, mapping, o)
	if err != nil {
		return err
	}

	mode, err := catalog.ParseLookupMode(cfg.LookupMode)
	if err != nil {
		return fmt.Errorf("selecting lookup mode: %w", err)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithLookupMode(mode),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
	)
	rows, err := svc.Run(ctx, inputs)
	if err != nil {
		return err
	}

	outPath := o.outPath
	if outPath == "" {
		outPath = "consent-report-" + runID + "." + cfg.OutputFormat
	}
	if err := writeReport(outPath, cfg.OutputFormat, rows); err != nil {
		return err
	}

	metrics.RecordRunDuration(time.Since(started).Seconds())
	logSummary(ctx, log)

	log.Info(ctx, "report written",
		logger.String("run_id", runID),
		logger.String("path", outPath),
		logger.Int("rows", len(rows)),
	)
	return nil
}

// applyOverrides lets flags win over file and environment configuration.
func applyOverrides(cfg *config.Config, o *options) {
	if o.mode != "" {
		cfg.LookupMode = o.mode
	}
	if o.mappingPath != "" {
		cfg.MappingFile = o.mappingPath
	}
	if o.workers > 0 {
		cfg.WorkerCount = o.workers
	}
	if o.format != "" {
		cfg.OutputFormat = o.format
	} else if inferred := formatFromPath(o.outPath); inferred != "" {
		cfg.OutputFormat = inferred
	}
}

// formatFromPath infers the output format from the output file extension.
// Unknown or missing extensions return "" and the configured default stands.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return config.FormatCSV
	case ".docx":
		return config.FormatDOCX
	default:
		return ""
	}
}

// loadInputs reads and normalizes the three input tables.
func loadInputs(ctx context.Context, mapping tabular.Mapping, o *options) (app.Inputs, error) {
	log := logger.Get()
	var in app.Inputs
	var stats tabular.Stats

	catalogTable, err := tabular.ReadFile(o.catalogPath, mapping.CatalogSheet)
	if err != nil {
		return in, fmt.Errorf("reading catalog file: %w", err)
	}
	versions, s, err := tabular.BuildCatalog(catalogTable, mapping)
	if err != nil {
		return in, fmt.Errorf("normalizing catalog: %w", err)
	}
	stats.Add(s)

	consentTable, err := tabular.ReadFile(o.consentsPath, "")
	if err != nil {
		return in, fmt.Errorf("reading consents file: %w", err)
	}
	signatures, s, err := tabular.BuildSignatures(consentTable, mapping)
	if err != nil {
		return in, fmt.Errorf("normalizing consents: %w", err)
	}
	stats.Add(s)

	eosTable, err := tabular.ReadFile(o.eosPath, "")
	if err != nil {
		return in, fmt.Errorf("reading end-of-study file: %w", err)
	}
	exits, eligibility, s, err := tabular.BuildExitEligibility(eosTable, mapping)
	if err != nil {
		return in, fmt.Errorf("normalizing end-of-study data: %w", err)
	}
	stats.Add(s)

	if stats.UnparsedDates > 0 {
		metrics.RecordDateParseFailures(stats.UnparsedDates)
		log.Warn(ctx, "date cells could not be parsed and were treated as absent",
			logger.Int("count", stats.UnparsedDates))
	}
	if stats.SkippedRows > 0 {
		metrics.RecordSkippedInputRows(stats.SkippedRows)
		log.Warn(ctx, "input rows skipped for missing required cells",
			logger.Int("count", stats.SkippedRows))
	}

	in.CatalogVersions = versions
	in.Signatures = signatures
	in.Exits = exits
	in.Eligibility = eligibility
	return in, nil
}

// writeReport renders the rows into the requested format.
func writeReport(path, format string, rows []report.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch format {
	case config.FormatCSV:
		err = render.WriteCSV(f, rows)
	default:
		err = render.WriteDOCX(f, rows)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// logSummary logs the end-of-run metrics digest.
func logSummary(ctx context.Context, log logger.Logger) {
	summary, err := metrics.Summary()
	if err != nil {
		log.Warn(ctx, "gathering metrics summary failed", logger.Err(err))
		return
	}
	fields := make([]logger.Field, 0, len(summary))
	for name, value := range summary {
		fields = append(fields, logger.Any(name, value))
	}
	log.Info(ctx, "run summary", fields...)
}
