package tabular

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Mapping translates study-specific column names into canonical fields. It
// is an explicit configuration object passed into the builders; nothing in
// this package caches mappings process-wide. Defaults mirror the column
// conventions of the original EDC exports.
type Mapping struct {
	// Catalog table: columns matched by name fragments because catalog
	// sheets vary wildly between studies.
	VersionNameHints   []string `koanf:"version_name_hints"`   // all fragments must match
	EffectiveFromHints []string `koanf:"effective_from_hints"` // any fragment matches

	// Consent table: exact column names.
	ParticipantColumn   string `koanf:"participant_column"`
	SignatureDateColumn string `koanf:"signature_date_column"`
	RandoGroup1Column   string `koanf:"rando_group1_column"`
	RandoGroup2Column   string `koanf:"rando_group2_column"`

	// Exit/eligibility table.
	ExitDateColumn   string   `koanf:"exit_date_column"`
	DeathDateColumn  string   `koanf:"death_date_column"`
	EligibilityHints []string `koanf:"eligibility_hints"` // any fragment matches

	// CatalogSheet names the preferred XLSX sheet for the catalog file;
	// readers fall back to the first sheet when it is missing.
	CatalogSheet string `koanf:"catalog_sheet"`

	// DateLayouts are candidate Go time layouts tried in order.
	DateLayouts []string `koanf:"date_layouts"`
}

// DefaultMapping returns the mapping for the standard export conventions.
func DefaultMapping() Mapping {
	return Mapping{
		VersionNameHints:    []string{"icf", "version"},
		EffectiveFromHints:  []string{"gültig", "valid"},
		ParticipantColumn:   "mnpaid",
		SignatureDateColumn: "icdat",
		RandoGroup1Column:   "mnp_rando_gr",
		RandoGroup2Column:   "mnp_rando_v6_gr",
		ExitDateColumn:      "eosdat",
		DeathDateColumn:     "dthdat",
		EligibilityHints:    []string{"elig"},
		CatalogSheet:        "ICF2",
		DateLayouts: []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			"02.01.2006",
			"01-02-06",
			"02/01/2006",
		},
	}
}

// LoadMapping layers a YAML mapping file over the defaults. An empty path
// returns the defaults unchanged.
func LoadMapping(path string) (Mapping, error) {
	m := DefaultMapping()
	if path == "" {
		return m, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return m, fmt.Errorf("loading mapping file: %w", err)
	}
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return m, fmt.Errorf("decoding mapping file: %w", err)
	}
	return m, nil
}
