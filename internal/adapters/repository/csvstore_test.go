package repository_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aqio/aqdash/internal/adapters/repository"
)

const sampleCSV = `station,PM2.5,PM10,TEMP,note
Dongsi,80,120,15,clear
Dongsi,NA,140,16,hazy
Changping,40,60,14,clear
Changping,45,NA,13,
Huairou,20,30,12,clear
Aotizhongxin,95,150,17,smog
`

func loadSample(t *testing.T) repository.Dataset {
	t.Helper()
	store, err := repository.LoadReader(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return store
}

func TestCSVStoreLoading(t *testing.T) {
	convey.Convey("Given a CSV dataset with a station column", t, func() {
		store := loadSample(t)

		convey.Convey("Then rows and columns reflect the file", func() {
			convey.So(store.Rows(), convey.ShouldEqual, 6)
			convey.So(store.Columns(), convey.ShouldResemble, []string{"station", "PM2.5", "PM10", "TEMP", "note"})
		})

		convey.Convey("Then all stations present are listed sorted", func() {
			convey.So(store.Stations(), convey.ShouldResemble,
				[]string{"Aotizhongxin", "Changping", "Dongsi", "Huairou"})
		})

		convey.Convey("Then station counts match the file", func() {
			counts := store.StationCounts()
			convey.So(counts["Dongsi"], convey.ShouldEqual, 2)
			convey.So(counts["Changping"], convey.ShouldEqual, 2)
			convey.So(counts["Huairou"], convey.ShouldEqual, 1)
			convey.So(counts["Aotizhongxin"], convey.ShouldEqual, 1)
		})
	})

	convey.Convey("Given a CSV without a station column", t, func() {
		_, err := repository.LoadReader(strings.NewReader("city,PM2.5\nDongsi,80\n"))

		convey.Convey("Then loading fails with an explicit error", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "station column not found")
		})
	})

	convey.Convey("Given a CSV with a malformed row", t, func() {
		broken := "station,PM2.5\nDongsi,80\nChangping,\"45\n"
		_, err := repository.LoadReader(strings.NewReader(broken))

		convey.Convey("Then loading fails instead of skipping the row", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, repository.ErrMalformedRow), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "row 3")
		})
	})

	convey.Convey("Given a CSV with a header but no rows", t, func() {
		_, err := repository.LoadReader(strings.NewReader("station,PM2.5\n"))

		convey.Convey("Then loading fails instead of serving an empty dashboard", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "no rows")
		})
	})
}

func TestStationFiltering(t *testing.T) {
	convey.Convey("Given the loaded sample dataset", t, func() {
		store := loadSample(t)

		convey.Convey("When filtering every enumerated station", func() {
			for _, station := range store.Stations() {
				subset := store.ByStation(station)
				_, rows := subset.SampleRows(subset.Len())

				convey.Convey("Then "+station+" yields only matching rows", func() {
					convey.So(subset.Len(), convey.ShouldBeGreaterThan, 0)
					for _, row := range rows {
						convey.So(row[0], convey.ShouldEqual, station)
					}
				})
			}
		})

		convey.Convey("When filtering an unknown station", func() {
			subset := store.ByStation("Gucheng")

			convey.Convey("Then the subset is empty, not an error", func() {
				convey.So(subset.Len(), convey.ShouldEqual, 0)
				convey.So(subset.MissingPercent(), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestSubsetStatistics(t *testing.T) {
	convey.Convey("Given the Dongsi subset", t, func() {
		store := loadSample(t)
		subset := store.ByStation("Dongsi")

		convey.Convey("Then summary metrics describe the subset, not the dataset", func() {
			convey.So(subset.Len(), convey.ShouldEqual, 2)
			convey.So(subset.ColumnCount(), convey.ShouldEqual, 5)
			// One NA cell out of 10.
			convey.So(subset.MissingPercent(), convey.ShouldAlmostEqual, 10.0, 0.001)
		})

		convey.Convey("Then missing-by-column lists only gapped columns", func() {
			missing := subset.MissingByColumn()
			convey.So(missing, convey.ShouldHaveLength, 1)
			convey.So(missing[0].Column, convey.ShouldEqual, "PM2.5")
			convey.So(missing[0].Missing, convey.ShouldEqual, 1)
		})

		convey.Convey("Then numeric columns exclude text and station", func() {
			convey.So(subset.NumericColumns(), convey.ShouldResemble, []string{"PM2.5", "PM10", "TEMP"})
			_, ok := subset.Numeric("note")
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = subset.Numeric("station")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then missing numeric cells come back as NaN", func() {
			values, ok := subset.Numeric("PM2.5")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(values, convey.ShouldHaveLength, 2)
			convey.So(values[0], convey.ShouldEqual, 80)
			convey.So(math.IsNaN(values[1]), convey.ShouldBeTrue)
		})

		convey.Convey("Then sample rows cap at the subset length", func() {
			header, rows := subset.SampleRows(20)
			convey.So(header, convey.ShouldHaveLength, 5)
			convey.So(rows, convey.ShouldHaveLength, 2)
		})
	})
}
