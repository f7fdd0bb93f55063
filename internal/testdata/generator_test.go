package testdata_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/clinops/icfcheck/internal/adapters/tabular"
	"github.com/clinops/icfcheck/internal/app"
	"github.com/clinops/icfcheck/internal/testdata"
	"github.com/clinops/icfcheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func asTable(rows [][]string) *tabular.Table {
	return &tabular.Table{Header: rows[0], Rows: rows[1:]}
}

func TestGenerator(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	Convey("Given two generators with the same seed", t, func() {
		cfg := testdata.Config{Participants: 50, Versions: 3, Seed: 7}
		a, statsA := testdata.NewGenerator(cfg).Generate()
		b, statsB := testdata.NewGenerator(cfg).Generate()

		Convey("Then the fixtures are identical", func() {
			So(reflect.DeepEqual(a, b), ShouldBeTrue)
			So(statsA, ShouldResemble, statsB)
		})

		Convey("Then the catalog has one row per version", func() {
			So(statsA.CatalogRows, ShouldEqual, 3)
			So(len(a.Catalog), ShouldEqual, 4)
		})
	})

	Convey("Given generators with different seeds", t, func() {
		a, _ := testdata.NewGenerator(testdata.Config{Participants: 50, Versions: 3, Seed: 1}).Generate()
		b, _ := testdata.NewGenerator(testdata.Config{Participants: 50, Versions: 3, Seed: 2}).Generate()

		Convey("Then the consent tables differ", func() {
			So(reflect.DeepEqual(a.Consents, b.Consents), ShouldBeFalse)
		})
	})

	Convey("Given a generated fixture", t, func() {
		fx, stats := testdata.NewGenerator(testdata.Config{Participants: 100, Versions: 4, Seed: 42}).Generate()
		mapping := tabular.DefaultMapping()

		Convey("Then it normalizes with the default column mapping", func() {
			versions, _, err := tabular.BuildCatalog(asTable(fx.Catalog), mapping)
			So(err, ShouldBeNil)
			So(len(versions), ShouldEqual, 4)

			signatures, sigStats, err := tabular.BuildSignatures(asTable(fx.Consents), mapping)
			So(err, ShouldBeNil)
			So(len(signatures), ShouldEqual, stats.SignatureRows)
			So(sigStats.UnparsedDates, ShouldEqual, stats.BadDateCells)

			exits, eligibility, _, err := tabular.BuildExitEligibility(asTable(fx.EOS), mapping)
			So(err, ShouldBeNil)
			So(len(exits), ShouldEqual, 100)
			So(len(eligibility), ShouldEqual, 100)

			Convey("And the full pipeline produces one block per participant", func() {
				svc := app.New(app.WithWorkerCount(4))
				rows, err := svc.Run(context.Background(), app.Inputs{
					CatalogVersions: versions,
					Signatures:      signatures,
					Exits:           exits,
					Eligibility:     eligibility,
				})
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 100*4)
			})
		})
	})
}
