package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clinops/icfcheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		err := logger.InitWithWriter(&buf)
		So(err, ShouldBeNil)

		Convey("When logging at info level", func() {
			logger.Get().Info(context.Background(), "report started", logger.String("run_id", "abc"))

			Convey("Then the message and fields appear in the output", func() {
				So(buf.String(), ShouldContainSubstring, "report started")
				So(buf.String(), ShouldContainSubstring, "run_id=abc")
			})
		})

		Convey("When logging below the configured level", func() {
			So(logger.SetLevelString("warn"), ShouldBeNil)
			logger.Get().Info(context.Background(), "suppressed")

			Convey("Then nothing is written", func() {
				So(buf.String(), ShouldNotContainSubstring, "suppressed")
			})

			// Restore for other tests sharing the global.
			So(logger.SetLevelString("info"), ShouldBeNil)
		})

		Convey("When using a named logger", func() {
			logger.Named("merger").Warn(context.Background(), "out of order rows")

			Convey("Then the message is written", func() {
				So(buf.String(), ShouldContainSubstring, "out of order rows")
			})
		})

		Convey("When building date fields", func() {
			Convey("Then absent dates render as a dash", func() {
				So(logger.Date("exit", time.Time{}).Value, ShouldEqual, "-")
			})

			Convey("Then present dates render as ISO", func() {
				d := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
				So(logger.Date("exit", d).Value, ShouldEqual, "2021-03-01")
			})
		})

		Convey("When parsing level strings", func() {
			So(logger.SetLevelString("DEBUG"), ShouldBeNil)
			So(logger.SetLevelString(" error "), ShouldBeNil)
			err := logger.SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "unknown log level"), ShouldBeTrue)
			So(logger.SetLevelString("info"), ShouldBeNil)
		})
	})
}
