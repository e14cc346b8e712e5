package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aqio/aqdash/internal/adapters/repository"
	service "github.com/aqio/aqdash/internal/app"
	"github.com/aqio/aqdash/internal/domain/eda"
	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/internal/domain/types"
	"github.com/aqio/aqdash/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const serviceCSV = `station,PM2.5,PM10,TEMP
Dongsi,80,120,15
Dongsi,60,100,16
Changping,45,70,13
Huairou,20,30,10
Aotizhongxin,95,150,18
`

// stubPredictor returns a fixed estimate or a fixed error.
type stubPredictor struct {
	estimate float64
	err      error
	calls    int
}

func (p *stubPredictor) Predict(_ context.Context, _ types.FeatureVector) (float64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.estimate, nil
}

func (p *stubPredictor) Meta() predict.Meta {
	return predict.Meta{Version: "rf-stub", Trees: 3, Features: types.FeatureNames()}
}

func loadDataset(t *testing.T) repository.Dataset {
	t.Helper()
	store, err := repository.LoadReader(strings.NewReader(serviceCSV))
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return store
}

func TestStations(t *testing.T) {
	convey.Convey("Given a service over a loaded dataset", t, func() {
		svc := service.New(loadDataset(t), &stubPredictor{estimate: 42})

		convey.Convey("When listing stations", func() {
			stations := svc.Stations(context.Background())

			convey.Convey("Then all four monitoring sites appear with counts and descriptions", func() {
				convey.So(stations, convey.ShouldHaveLength, 4)

				byName := map[string]types.StationInfo{}
				for _, st := range stations {
					byName[st.Name] = st
				}
				convey.So(byName["Dongsi"].Rows, convey.ShouldEqual, 2)
				convey.So(byName["Changping"].Rows, convey.ShouldEqual, 1)
				convey.So(byName["Dongsi"].Description, convey.ShouldNotBeEmpty)
			})
		})
	})
}

func TestOverview(t *testing.T) {
	convey.Convey("Given a service over a loaded dataset", t, func() {
		svc := service.New(loadDataset(t), &stubPredictor{}, service.WithSampleRows(1))

		convey.Convey("When building the overview for one station", func() {
			overview := svc.Overview(context.Background(), "Dongsi")

			convey.Convey("Then counts cover only that station's rows", func() {
				convey.So(overview.Station, convey.ShouldEqual, "Dongsi")
				convey.So(overview.Rows, convey.ShouldEqual, 2)
				convey.So(overview.Columns, convey.ShouldEqual, 4)
				convey.So(overview.MissingPct, convey.ShouldEqual, 0)
			})

			convey.Convey("Then sample rows honor the configured cap", func() {
				convey.So(overview.SampleRows, convey.ShouldHaveLength, 1)
				convey.So(overview.SampleColumns, convey.ShouldResemble, []string{"station", "PM2.5", "PM10", "TEMP"})
			})
		})
	})
}

func TestChart(t *testing.T) {
	convey.Convey("Given a service over a loaded dataset", t, func() {
		svc := service.New(loadDataset(t), &stubPredictor{})

		convey.Convey("When building a distribution chart", func() {
			chart, err := svc.Chart(context.Background(), "Dongsi", eda.Request{Kind: eda.KindDistribution})

			convey.Convey("Then the chart is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(chart.Kind, convey.ShouldEqual, eda.KindDistribution)
			})
		})

		convey.Convey("When the chart cannot be built", func() {
			_, err := svc.Chart(context.Background(), "Dongsi", eda.Request{Kind: eda.KindPairplot, Columns: []string{"bogus"}})

			convey.Convey("Then the failure stays inline", func() {
				convey.So(errors.Is(err, eda.ErrUnknownColumn), convey.ShouldBeTrue)
			})
		})
	})
}

func TestPredict(t *testing.T) {
	convey.Convey("Given a service with a stub predictor", t, func() {
		stub := &stubPredictor{estimate: 42.4567}
		svc := service.New(loadDataset(t), stub)

		convey.Convey("When predicting", func() {
			out, err := svc.Predict(context.Background(), types.FeatureVector{100, 15, 20, 1, 30, 5, 0, 15, 5, 1010, 6, 12})

			convey.Convey("Then the estimate is rounded and stamped with model metadata", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.Estimate, convey.ShouldEqual, 42.46)
				convey.So(out.ModelVersion, convey.ShouldEqual, "rf-stub")
				convey.So(out.ID, convey.ShouldNotBeEmpty)
				convey.So(stub.calls, convey.ShouldEqual, 1)
			})

			convey.Convey("Then the prediction counter shows in stats", func() {
				stats := svc.GetStats()
				convey.So(stats["predictions"], convey.ShouldEqual, int64(1))
				convey.So(stats["modelVersion"], convey.ShouldEqual, "rf-stub")
				convey.So(stats["datasetRows"], convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the predictor fails", func() {
			stub.err = errors.New("boom")
			_, err := svc.Predict(context.Background(), types.FeatureVector{})

			convey.Convey("Then the error is surfaced", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
