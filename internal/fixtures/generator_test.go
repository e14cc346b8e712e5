package fixtures_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aqio/aqdash/internal/adapters/repository"
	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/internal/domain/types"
	"github.com/aqio/aqdash/internal/fixtures"
	"github.com/aqio/aqdash/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	convey.Convey("Given generated fixtures", t, func() {
		dir := t.TempDir()
		err := fixtures.Generate(context.Background(), fixtures.Config{
			OutDir:      dir,
			RowsPerSite: 50,
			Seed:        1,
		})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When loading the dataset back", func() {
			store, err := repository.Load(filepath.Join(dir, "merged_data.csv"))

			convey.Convey("Then every station has the requested rows", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.Rows(), convey.ShouldEqual, 200)

				counts := store.StationCounts()
				for _, st := range types.Stations() {
					convey.So(counts[string(st)], convey.ShouldEqual, 50)
				}
			})

			convey.Convey("Then the feature columns parse as numeric", func() {
				convey.So(err, convey.ShouldBeNil)
				subset := store.ByStation("Dongsi")
				numeric := subset.NumericColumns()
				convey.So(numeric, convey.ShouldContain, "PM2.5")
				convey.So(numeric, convey.ShouldContain, "PM10")
				convey.So(numeric, convey.ShouldContain, "WSPM")
			})
		})

		convey.Convey("When loading the artifacts back", func() {
			pipeline, err := predict.LoadPipeline(
				filepath.Join(dir, "scaler.json"),
				filepath.Join(dir, "model_rf.json"),
			)

			convey.Convey("Then the pipeline is usable and deterministic", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pipeline.Meta().Version, convey.ShouldEqual, "rf-fixture-v1")
				convey.So(pipeline.Meta().Trees, convey.ShouldEqual, 3)

				vector := types.FeatureVector{100, 15, 20, 1.0, 30, 5, 0, 15, 5, 1010, 6, 12}
				first, err := pipeline.Predict(context.Background(), vector)
				convey.So(err, convey.ShouldBeNil)
				again, err := pipeline.Predict(context.Background(), vector)
				convey.So(err, convey.ShouldBeNil)
				convey.So(again, convey.ShouldEqual, first)
			})
		})

		convey.Convey("When generating twice with the same seed", func() {
			other := t.TempDir()
			err := fixtures.Generate(context.Background(), fixtures.Config{
				OutDir:      other,
				RowsPerSite: 50,
				Seed:        1,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the datasets are identical", func() {
				a, err := repository.Load(filepath.Join(dir, "merged_data.csv"))
				convey.So(err, convey.ShouldBeNil)
				b, err := repository.Load(filepath.Join(other, "merged_data.csv"))
				convey.So(err, convey.ShouldBeNil)

				ah, ar := a.ByStation("Changping").SampleRows(5)
				bh, br := b.ByStation("Changping").SampleRows(5)
				convey.So(bh, convey.ShouldResemble, ah)
				convey.So(br, convey.ShouldResemble, ar)
			})
		})
	})
}
