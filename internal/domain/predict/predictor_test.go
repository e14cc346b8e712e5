package predict_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/internal/domain/types"
)

// identityScaler returns a scaler with mean 0 and scale 1 for every feature.
func identityScaler(t *testing.T) *predict.StandardScaler {
	t.Helper()
	mean := make([]float64, types.FeatureCount)
	scale := make([]float64, types.FeatureCount)
	for i := range scale {
		scale[i] = 1
	}
	s, err := predict.NewStandardScaler(types.FeatureNames(), mean, scale)
	if err != nil {
		t.Fatalf("build scaler: %v", err)
	}
	return s
}

func TestStandardScaler(t *testing.T) {
	convey.Convey("Given a scaler with known parameters", t, func() {
		mean := make([]float64, types.FeatureCount)
		scale := make([]float64, types.FeatureCount)
		for i := range mean {
			mean[i] = 10
			scale[i] = 2
		}
		scaler, err := predict.NewStandardScaler(types.FeatureNames(), mean, scale)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When transforming a raw vector", func() {
			var raw types.FeatureVector
			for i := range raw {
				raw[i] = 14
			}
			out := scaler.Transform(raw)

			convey.Convey("Then each element is (x-mean)/scale", func() {
				for i := range out {
					convey.So(out[i], convey.ShouldEqual, 2)
				}
			})
		})
	})

	convey.Convey("Given mismatched artifact dimensions", t, func() {
		_, err := predict.NewStandardScaler([]string{"PM10"}, []float64{1}, []float64{1})

		convey.Convey("Then construction fails with a dimension error", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "dimension mismatch")
		})
	})

	convey.Convey("Given a zero scale entry", t, func() {
		mean := make([]float64, types.FeatureCount)
		scale := make([]float64, types.FeatureCount)
		_, err := predict.NewStandardScaler(types.FeatureNames(), mean, scale)

		convey.Convey("Then construction is rejected", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "zero scale")
		})
	})
}

func TestRandomForest(t *testing.T) {
	convey.Convey("Given a forest with two known trees", t, func() {
		// Tree A: v[0] <= 1 -> 10, else 30. Tree B: constant 20.
		forest, err := predict.NewRandomForest("rf-test", []predict.Tree{
			{Nodes: []predict.Node{
				{Feature: 0, Threshold: 1, Left: 1, Right: 2},
				{Feature: -1, Value: 10},
				{Feature: -1, Value: 30},
			}},
			{Nodes: []predict.Node{{Feature: -1, Value: 20}}},
		})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When predicting on the low branch", func() {
			out, err := forest.Predict(types.FeatureVector{0.5})
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldEqual, 15) // mean(10, 20)
		})

		convey.Convey("When predicting on the high branch", func() {
			out, err := forest.Predict(types.FeatureVector{2})
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldEqual, 25) // mean(30, 20)
		})

		convey.Convey("Then metadata reflects the artifact", func() {
			convey.So(forest.Version(), convey.ShouldEqual, "rf-test")
			convey.So(forest.TreeCount(), convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given an empty forest", t, func() {
		_, err := predict.NewRandomForest("rf-empty", nil)

		convey.Convey("Then construction fails", func() {
			convey.So(err, convey.ShouldEqual, predict.ErrEmptyTree)
		})
	})

	convey.Convey("Given a tree splitting on an out-of-range feature", t, func() {
		forest, err := predict.NewRandomForest("rf-bad", []predict.Tree{
			{Nodes: []predict.Node{
				{Feature: 99, Threshold: 0, Left: 1, Right: 1},
				{Feature: -1, Value: 1},
			}},
		})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then prediction reports the artifact fault", func() {
			_, err := forest.Predict(types.FeatureVector{})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "dimension mismatch")
		})
	})
}

func TestPipelineDeterminism(t *testing.T) {
	convey.Convey("Given a pipeline over fixed artifacts", t, func() {
		forest, err := predict.NewRandomForest("rf-det", []predict.Tree{
			{Nodes: []predict.Node{
				{Feature: 0, Threshold: 50, Left: 1, Right: 2},
				{Feature: -1, Value: 12.5},
				{Feature: -1, Value: 87.5},
			}},
		})
		convey.So(err, convey.ShouldBeNil)
		pipeline, err := predict.NewPipeline(identityScaler(t), forest)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When predicting the reference vector repeatedly", func() {
			vector := types.FeatureVector{100, 15, 20, 1.0, 30, 5, 0, 15, 5, 1010, 6, 12}
			first, err := pipeline.Predict(context.Background(), vector)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then identical input always yields identical output", func() {
				for i := 0; i < 10; i++ {
					again, err := pipeline.Predict(context.Background(), vector)
					convey.So(err, convey.ShouldBeNil)
					convey.So(again, convey.ShouldEqual, first)
				}
			})
		})

		convey.Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := pipeline.Predict(ctx, types.FeatureVector{})

			convey.Convey("Then prediction is refused", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestArtifactLoading(t *testing.T) {
	convey.Convey("Given artifact files on disk", t, func() {
		dir := t.TempDir()

		scalerJSON := map[string]any{
			"features": types.FeatureNames(),
			"mean":     make([]float64, types.FeatureCount),
			"scale": []float64{
				1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
			},
		}
		modelJSON := map[string]any{
			"model_version": "rf-v7",
			"n_features":    types.FeatureCount,
			"trees": []predict.Tree{
				{Nodes: []predict.Node{{Feature: -1, Value: 55}}},
			},
		}
		scalerPath := writeArtifact(t, dir, "scaler.json", scalerJSON)
		modelPath := writeArtifact(t, dir, "model.json", modelJSON)

		convey.Convey("When loading the pipeline", func() {
			pipeline, err := predict.LoadPipeline(scalerPath, modelPath)

			convey.Convey("Then both artifacts are wired and usable", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pipeline.Meta().Version, convey.ShouldEqual, "rf-v7")
				convey.So(pipeline.Meta().Trees, convey.ShouldEqual, 1)

				out, err := pipeline.Predict(context.Background(), types.FeatureVector{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, 55)
			})
		})

		convey.Convey("When the scaler file is missing", func() {
			_, err := predict.LoadPipeline(filepath.Join(dir, "nope.json"), modelPath)

			convey.Convey("Then loading fails terminally", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "artifact load failed")
			})
		})

		convey.Convey("When the model file is malformed", func() {
			badPath := filepath.Join(dir, "bad.json")
			convey.So(os.WriteFile(badPath, []byte("{not json"), 0o600), convey.ShouldBeNil)
			_, err := predict.LoadPipeline(scalerPath, badPath)

			convey.Convey("Then loading fails with a decode error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "decode model")
			})
		})
	})
}

func writeArtifact(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}
