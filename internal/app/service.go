// Package service provides the core business service that implements the
// dependencies required by the HTTP API: station listing, overview metrics,
// chart building and PM2.5 prediction over the loaded artifacts.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aqio/aqdash/internal/adapters/repository"
	"github.com/aqio/aqdash/internal/domain/eda"
	"github.com/aqio/aqdash/internal/domain/predict"
	"github.com/aqio/aqdash/internal/domain/types"
	"github.com/aqio/aqdash/pkg/logger"
	"github.com/aqio/aqdash/pkg/metrics"
)

// defaultSampleRows is the number of leading rows shown in the overview tab.
const defaultSampleRows = 20

// Service holds the immutable dataset and prediction artifacts and exposes
// the dashboard operations. All state after construction is read-only except
// the prediction counter, so methods are safe for concurrent use.
type Service struct {
	dataset   repository.Dataset
	predictor predict.Predictor
	logger    logger.Logger

	sampleRows int
	chartOpts  eda.Options

	predictions atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSampleRows sets how many leading rows the overview returns.
func WithSampleRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sampleRows = n
		}
	}
}

// WithChartOptions sets histogram and pairplot tuning.
func WithChartOptions(opts eda.Options) Option {
	return func(s *Service) {
		s.chartOpts = opts
	}
}

// New constructs a Service over a loaded dataset and predictor.
func New(dataset repository.Dataset, predictor predict.Predictor, opts ...Option) *Service {
	s := &Service{
		dataset:    dataset,
		predictor:  predictor,
		sampleRows: defaultSampleRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	metrics.UpdateDatasetRows(dataset.Rows())
	for station, rows := range dataset.StationCounts() {
		metrics.UpdateStationRows(station, rows)
	}
	return s
}

// Stations returns the enumerated stations with descriptions and row counts.
func (s *Service) Stations(_ context.Context) []types.StationInfo {
	counts := s.dataset.StationCounts()
	out := make([]types.StationInfo, 0, len(types.Stations()))
	for _, st := range types.Stations() {
		out = append(out, types.StationInfo{
			Name:        string(st),
			Description: st.Description(),
			Rows:        counts[string(st)],
		})
	}
	return out
}

// Overview assembles the Data Overview tab for one station. Metrics are
// computed over the filtered subset only.
func (s *Service) Overview(_ context.Context, station string) types.Overview {
	subset := s.dataset.ByStation(station)
	header, rows := subset.SampleRows(s.sampleRows)
	return types.Overview{
		Station:        station,
		Rows:           subset.Len(),
		Columns:        subset.ColumnCount(),
		MissingPct:     eda.RoundTo2(subset.MissingPercent()),
		SampleColumns:  header,
		SampleRows:     rows,
		MissingColumns: subset.MissingByColumn(),
	}
}

// Chart builds the requested chart over one station's rows. Failures are
// inline errors for the EDA tab, never fatal.
func (s *Service) Chart(ctx context.Context, station string, req eda.Request) (*eda.Chart, error) {
	subset := s.dataset.ByStation(station)
	chart, err := eda.BuildChart(subset, req, s.chartOpts)
	if err != nil {
		metrics.RecordChartError()
		s.logger.Warn(ctx, "chart build failed",
			logger.String("station", station),
			logger.String("kind", string(req.Kind)),
			logger.Error(err))
		return nil, err
	}
	metrics.RecordChartRender(string(req.Kind))
	return chart, nil
}

// Predict runs the scaler and model over one raw feature vector.
func (s *Service) Predict(ctx context.Context, v types.FeatureVector) (types.Prediction, error) {
	start := time.Now()
	estimate, err := s.predictor.Predict(ctx, v)
	if err != nil {
		metrics.RecordPredictionFailure()
		s.logger.Error(ctx, "prediction failed", logger.Error(err))
		return types.Prediction{}, fmt.Errorf("predict: %w", err)
	}
	metrics.RecordPrediction(float64(time.Since(start).Milliseconds()))
	s.predictions.Add(1)

	return types.Prediction{
		ID:           uuid.NewString(),
		Estimate:     eda.RoundTo2(estimate),
		ModelVersion: s.predictor.Meta().Version,
	}, nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	meta := s.predictor.Meta()
	return map[string]interface{}{
		"datasetRows":   s.dataset.Rows(),
		"stationCounts": s.dataset.StationCounts(),
		"predictions":   s.predictions.Load(),
		"modelVersion":  meta.Version,
		"modelTrees":    meta.Trees,
		"features":      meta.Features,
	}
}
