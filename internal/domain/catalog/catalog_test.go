package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/clinops/icfcheck/internal/domain/catalog"
	"github.com/clinops/icfcheck/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCatalog(t *testing.T) {
	versions := []model.CatalogVersion{
		{Name: "V2.0", EffectiveFrom: date(2021, 1, 1)},
		{Name: "V1.0", EffectiveFrom: date(2020, 1, 1)},
		{Name: "V3.0", EffectiveFrom: date(2022, 6, 1)},
	}

	Convey("Given a catalog in interval mode", t, func() {
		c, err := catalog.New(versions)
		So(err, ShouldBeNil)

		Convey("Then versions are sorted ascending by effective date", func() {
			vs := c.Versions()
			So(vs[0].Name, ShouldEqual, "V1.0")
			So(vs[1].Name, ShouldEqual, "V2.0")
			So(vs[2].Name, ShouldEqual, "V3.0")
			So(c.Len(), ShouldEqual, 3)
		})

		Convey("Then the returned version slice is a copy", func() {
			c.Versions()[0].Name = "mutated"
			So(c.Versions()[0].Name, ShouldEqual, "V1.0")
		})

		Convey("When resolving a date inside an interval", func() {
			So(c.Resolve(date(2020, 6, 1)), ShouldResemble, []string{"V1.0"})
			So(c.Resolve(date(2021, 12, 31)), ShouldResemble, []string{"V2.0"})
		})

		Convey("When resolving exactly on an effective date", func() {
			So(c.Resolve(date(2021, 1, 1)), ShouldResemble, []string{"V2.0"})
		})

		Convey("When resolving after the last effective date", func() {
			So(c.Resolve(date(2030, 1, 1)), ShouldResemble, []string{"V3.0"})
		})

		Convey("When resolving before the first effective date", func() {
			So(c.Resolve(date(2019, 12, 31)), ShouldBeEmpty)
		})

		Convey("When resolving an absent date", func() {
			So(c.Resolve(time.Time{}), ShouldBeEmpty)
		})

		Convey("Then the day before each effective date belongs to the previous version", func() {
			// Intervals partition the axis: no gaps above the first
			// effective date, at most one version per date.
			for _, v := range c.Versions() {
				got := c.Resolve(v.EffectiveFrom.AddDate(0, 0, -1))
				So(len(got), ShouldBeLessThanOrEqualTo, 1)
				So(got, ShouldNotContain, v.Name)
			}
			for d := date(2020, 1, 1); d.Before(date(2023, 1, 1)); d = d.AddDate(0, 1, 0) {
				So(len(c.Resolve(d)), ShouldEqual, 1)
			}
		})
	})

	Convey("Given a catalog with versions sharing an effective date", t, func() {
		tied := []model.CatalogVersion{
			{Name: "VA", EffectiveFrom: date(2022, 1, 1)},
			{Name: "VB", EffectiveFrom: date(2022, 1, 1)},
			{Name: "V0", EffectiveFrom: date(2021, 1, 1)},
		}

		Convey("When built in tied-latest mode", func() {
			c, err := catalog.New(tied, catalog.WithLookupMode(catalog.TiedLatestLookup))
			So(err, ShouldBeNil)
			So(c.Mode(), ShouldEqual, catalog.TiedLatestLookup)

			Convey("Then both tied versions resolve for a later date", func() {
				So(c.Resolve(date(2022, 2, 1)), ShouldResemble, []string{"VA", "VB"})
			})

			Convey("Then an earlier date resolves to the single older version", func() {
				So(c.Resolve(date(2021, 6, 1)), ShouldResemble, []string{"V0"})
			})

			Convey("Then dates before the catalog resolve to nothing", func() {
				So(c.Resolve(date(2020, 6, 1)), ShouldBeEmpty)
			})
		})

		Convey("When built in interval mode", func() {
			c, err := catalog.New(tied)
			So(err, ShouldBeNil)

			Convey("Then at most one of the tied versions is returned", func() {
				So(len(c.Resolve(date(2022, 2, 1))), ShouldEqual, 1)
			})
		})
	})

	Convey("Given an empty version list", t, func() {
		_, err := catalog.New(nil)

		Convey("Then construction fails with ErrEmptyCatalog", func() {
			So(errors.Is(err, catalog.ErrEmptyCatalog), ShouldBeTrue)
		})
	})

	Convey("Given lookup mode strings", t, func() {
		Convey("Then known modes parse", func() {
			m, err := catalog.ParseLookupMode("interval")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, catalog.IntervalLookup)

			m, err = catalog.ParseLookupMode("Tied-Latest")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, catalog.TiedLatestLookup)
		})

		Convey("Then unknown modes fail", func() {
			_, err := catalog.ParseLookupMode("newest")
			So(errors.Is(err, catalog.ErrUnknownLookupMode), ShouldBeTrue)
		})
	})
}
