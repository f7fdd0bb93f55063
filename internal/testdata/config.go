package testdata

// Config holds configuration for fixture generation.
type Config struct {
	Participants int    // number of participants to generate
	Versions     int    // number of catalog versions
	OutDir       string // directory the fixture files are written to
	Format       string // "csv" or "xlsx"
	Seed         int64  // RNG seed; identical seeds reproduce identical fixtures
	StartYear    int    // first catalog version becomes effective Jan 1 of this year
}

// Stats summarizes one generation run.
type Stats struct {
	CatalogRows    int
	SignatureRows  int
	DuplicateRows  int
	ExitRows       int
	DeathRows      int
	IneligibleRows int
	BadDateCells   int
}

// Fixture holds the three generated tables, header row first.
type Fixture struct {
	Catalog  [][]string
	Consents [][]string
	EOS      [][]string
}
