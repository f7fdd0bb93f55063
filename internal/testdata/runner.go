package testdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/clinops/icfcheck/pkg/logger"
)

// Output file base names; the extension follows the configured format.
const (
	catalogBase  = "catalog"
	consentsBase = "consents"
	eosBase      = "eos"
)

// Run generates one fixture set and writes the three files into OutDir.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Get().Named("testdata")

	fx, stats := NewGenerator(cfg).Generate()

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0o750); err != nil {
			return stats, fmt.Errorf("creating output directory: %w", err)
		}
	}

	files := []struct {
		base string
		rows [][]string
	}{
		{catalogBase, fx.Catalog},
		{consentsBase, fx.Consents},
		{eosBase, fx.EOS},
	}
	for _, f := range files {
		path, err := writeTable(cfg, f.base, f.rows)
		if err != nil {
			return stats, err
		}
		log.Info(ctx, "fixture written",
			logger.String("path", path),
			logger.Int("rows", len(f.rows)-1),
		)
	}

	log.Info(ctx, "generation complete",
		logger.Int("participants", cfg.Participants),
		logger.Int("catalog_rows", stats.CatalogRows),
		logger.Int("signature_rows", stats.SignatureRows),
		logger.Int("duplicate_rows", stats.DuplicateRows),
		logger.Int("exit_rows", stats.ExitRows),
		logger.Int("death_rows", stats.DeathRows),
		logger.Int("ineligible_rows", stats.IneligibleRows),
		logger.Int("bad_date_cells", stats.BadDateCells),
	)
	return stats, nil
}

func writeTable(cfg Config, base string, rows [][]string) (string, error) {
	if cfg.Format == "xlsx" {
		path := filepath.Join(cfg.OutDir, base+".xlsx")
		return path, writeXLSX(path, rows)
	}
	path := filepath.Join(cfg.OutDir, base+".csv")
	return path, writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, rows [][]string) error {
	x := excelize.NewFile()
	defer x.Close()

	sheet := x.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := x.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
