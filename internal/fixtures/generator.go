// Package fixtures generates a synthetic dataset and artifact files so the
// dashboard can be run locally without the real export. The generated model
// is a deliberately small forest whose outputs track the synthetic PM10
// levels; it exists for wiring and demos, not for accuracy.
package fixtures

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/internal/domain/types"
	"github.com/aqio/aqdash/pkg/logger"
)

// Synthetic measurement baselines per station, loosely ordered from urban to
// rural so the stations look distinguishable in the EDA tab.
var stationBaselines = map[types.Station]float64{
	types.StationDongsi:       90,
	types.StationAotizhongxin: 85,
	types.StationChangping:    65,
	types.StationHuairou:      45,
}

// missingRate is the fraction of numeric cells written as NA.
const missingRate = 0.02

// Config controls fixture generation.
type Config struct {
	OutDir      string
	RowsPerSite int
	Seed        int64
}

// Generate writes merged_data.csv, scaler.json and model_rf.json under
// cfg.OutDir.
func Generate(ctx context.Context, cfg Config) error {
	if cfg.RowsPerSite <= 0 {
		cfg.RowsPerSite = 500
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // fixtures want reproducibility, not entropy

	if err := writeDataset(cfg, rng); err != nil {
		return err
	}
	if err := writeScaler(cfg); err != nil {
		return err
	}
	if err := writeModel(cfg); err != nil {
		return err
	}

	logger.Get().Info(ctx, "fixtures written",
		logger.String("dir", cfg.OutDir),
		logger.Int("rowsPerStation", cfg.RowsPerSite),
	)
	return nil
}

func synthObservation(rng *rand.Rand, station types.Station, i int) types.Observation {
	base := stationBaselines[station]
	month := 1 + i%12
	hour := i % 24
	seasonal := 20 * math.Sin(2*math.Pi*float64(month)/12)
	return types.Observation{
		Station: station,
		PM25:    math.Max(1, base+seasonal+rng.NormFloat64()*25),
		PM10:    math.Max(1, base*1.4+seasonal+rng.NormFloat64()*30),
		SO2:     math.Max(0.5, base/6+rng.NormFloat64()*5),
		NO2:     math.Max(0.5, base/3+rng.NormFloat64()*10),
		CO:      math.Max(0.05, base/80+rng.NormFloat64()*0.3),
		O3:      math.Max(1, 60-seasonal/2+rng.NormFloat64()*15),
		TEMP:    12 + seasonal + rng.NormFloat64()*5,
		PRES:    1012 - seasonal/4 + rng.NormFloat64()*6,
		DEWP:    4 + seasonal + rng.NormFloat64()*5,
		RAIN:    math.Max(0, rng.NormFloat64()*1.5),
		WSPM:    math.Max(0, 2.5+rng.NormFloat64()*1.5),
		Month:   month,
		Hour:    hour,
	}
}

func writeDataset(cfg Config, rng *rand.Rand) error {
	f, err := os.Create(filepath.Join(cfg.OutDir, "merged_data.csv"))
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"station", "PM2.5", "PM10", "SO2", "NO2", "CO", "O3",
		"TEMP", "PRES", "DEWP", "RAIN", "WSPM", "month", "hour",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	num := func(v float64) string {
		if rng.Float64() < missingRate {
			return "NA"
		}
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	}

	for _, station := range types.Stations() {
		for i := 0; i < cfg.RowsPerSite; i++ {
			o := synthObservation(rng, station, i)
			row := []string{
				string(o.Station),
				num(o.PM25), num(o.PM10), num(o.SO2), num(o.NO2), num(o.CO), num(o.O3),
				num(o.TEMP), num(o.PRES), num(o.DEWP), num(o.RAIN), num(o.WSPM),
				strconv.Itoa(o.Month), strconv.Itoa(o.Hour),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

// scalerParams are rough population statistics for the synthetic columns, in
// feature-vector order.
var scalerParams = struct {
	mean  []float64
	scale []float64
}{
	mean:  []float64{100, 12, 24, 1.1, 55, 2.5, 1.2, 12, 4, 1012, 6.5, 11.5},
	scale: []float64{45, 6, 11, 0.4, 18, 1.6, 1.5, 12, 12, 7, 3.5, 6.9},
}

func writeScaler(cfg Config) error {
	artifact := map[string]any{
		"features": types.FeatureNames(),
		"mean":     scalerParams.mean,
		"scale":    scalerParams.scale,
	}
	return writeJSON(filepath.Join(cfg.OutDir, "scaler.json"), artifact)
}

// writeModel exports a tiny handcrafted forest. Each tree splits on the
// scaled PM10 feature (index 0) and emits PM2.5 levels typical of the band,
// so predictions respond plausibly to the dominant slider.
func writeModel(cfg Config) error {
	leaf := func(v float64) predict.Node {
		return predict.Node{Feature: -1, Value: v}
	}
	split := func(feature int, threshold float64, left, right int) predict.Node {
		return predict.Node{Feature: feature, Threshold: threshold, Left: left, Right: right}
	}

	trees := []predict.Tree{
		{Nodes: []predict.Node{
			split(0, -0.5, 1, 2), leaf(35), split(0, 0.5, 3, 4), leaf(80), leaf(140),
		}},
		{Nodes: []predict.Node{
			split(0, 0, 1, 2), split(7, 0, 3, 4), leaf(125), leaf(50), leaf(42),
		}},
		{Nodes: []predict.Node{
			split(4, 0, 1, 2), leaf(70), split(0, 1.0, 3, 4), leaf(85), leaf(150),
		}},
	}

	artifact := map[string]any{
		"model_version": "rf-fixture-v1",
		"n_features":    types.FeatureCount,
		"trees":         trees,
	}
	return writeJSON(filepath.Join(cfg.OutDir, "model_rf.json"), artifact)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
