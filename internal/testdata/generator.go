// Package testdata generates synthetic consent exports for exercising the
// report pipeline against realistically messy input.
package testdata

import (
	"fmt"
	"math/rand"
	"time"
)

// Behavior mix, as fractions of the participant population.
const (
	exitFraction       = 0.20
	deathFraction      = 0.05
	ineligibleFraction = 0.05
	skipLaterFraction  = 0.25
	duplicateFraction  = 0.03
	badDateFraction    = 0.02
)

// Spacing of generated dates.
const (
	monthsBetweenVersions = 6
	maxSignatureLagDays   = 120
	maxExitLagDays        = 400
)

const dateLayout = "2006-01-02"

// Header rows matching the standard export conventions.
var (
	catalogHeader = []string{"ICF Version", "gültig ab"}
	consentHeader = []string{"mnpaid", "icdat", "mnp_rando_gr", "mnp_rando_v6_gr"}
	eosHeader     = []string{"mnpaid", "eosdat", "dthdat", "eligibility"}
)

// Generator produces one Fixture per call, deterministically for a seed.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a Generator for the given configuration.
func NewGenerator(cfg Config) *Generator {
	if cfg.Participants < 1 {
		cfg.Participants = 1
	}
	if cfg.Versions < 1 {
		cfg.Versions = 1
	}
	if cfg.StartYear == 0 {
		cfg.StartYear = 2020
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate builds the three tables and the run statistics.
func (g *Generator) Generate() (*Fixture, Stats) {
	var stats Stats

	effective := g.effectiveDates()
	fx := &Fixture{
		Catalog:  [][]string{catalogHeader},
		Consents: [][]string{consentHeader},
		EOS:      [][]string{eosHeader},
	}

	for i, d := range effective {
		fx.Catalog = append(fx.Catalog, []string{
			fmt.Sprintf("ICF Version %d", i+1),
			d.Format(dateLayout),
		})
		stats.CatalogRows++
	}

	for p := 0; p < g.cfg.Participants; p++ {
		id := fmt.Sprintf("P%04d", p+1)
		g.generateParticipant(id, effective, fx, &stats)
	}
	return fx, stats
}

// effectiveDates spaces catalog versions a fixed number of months apart.
func (g *Generator) effectiveDates() []time.Time {
	dates := make([]time.Time, g.cfg.Versions)
	start := time.Date(g.cfg.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, i*monthsBetweenVersions, 0)
	}
	return dates
}

func (g *Generator) generateParticipant(id string, effective []time.Time, fx *Fixture, stats *Stats) {
	if g.chance(ineligibleFraction) {
		fx.EOS = append(fx.EOS, []string{id, "", "", "no"})
		stats.IneligibleRows++
		return
	}

	group1 := fmt.Sprintf("Group %c", 'A'+rune(g.rng.Intn(3)))
	group2 := ""
	if g.chance(0.5) {
		group2 = fmt.Sprintf("Arm %d", g.rng.Intn(2)+1)
	}

	var lastSigned time.Time
	for _, d := range effective {
		// Some participants never catch up with later versions; those
		// rows are what the verification flag exists for.
		if !lastSigned.IsZero() && g.chance(skipLaterFraction) {
			continue
		}

		signed := d.AddDate(0, 0, g.rng.Intn(maxSignatureLagDays))
		cell := signed.Format(dateLayout)
		if g.chance(badDateFraction) {
			cell = "pending"
			stats.BadDateCells++
		}

		fx.Consents = append(fx.Consents, []string{id, cell, group1, group2})
		stats.SignatureRows++
		lastSigned = signed

		if g.chance(duplicateFraction) {
			fx.Consents = append(fx.Consents, []string{id, cell, group1, group2})
			stats.SignatureRows++
			stats.DuplicateRows++
		}
	}

	exitCell, deathCell := "", ""
	if !lastSigned.IsZero() && g.chance(exitFraction) {
		exit := lastSigned.AddDate(0, 0, g.rng.Intn(maxExitLagDays)+1)
		exitCell = exit.Format(dateLayout)
		stats.ExitRows++
		if g.chance(deathFraction / exitFraction) {
			deathCell = exitCell
			stats.DeathRows++
		}
	}
	fx.EOS = append(fx.EOS, []string{id, exitCell, deathCell, "yes"})
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}
