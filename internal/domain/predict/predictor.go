// Package predict holds the prediction artifacts and the inference pipeline.
//
// The scaler and model are loaded once from exported artifact files and held
// immutably for the process lifetime. Everything downstream sees only the
// Predictor interface, so handlers and the app service can be tested with a
// stub.
package predict

import (
	"context"
	"fmt"

	"github.com/aqio/aqdash/internal/domain/types"
)

// Meta describes the loaded model for stats and logging.
type Meta struct {
	Version  string   `json:"version"`
	Trees    int      `json:"trees"`
	Features []string `json:"features"`
}

// Predictor maps a raw feature vector to a scalar PM2.5 estimate.
type Predictor interface {
	// Predict scales the raw vector and runs model inference, honoring ctx
	// for cancellation.
	Predict(ctx context.Context, v types.FeatureVector) (float64, error)

	// Meta returns model metadata.
	Meta() Meta
}

// Pipeline chains the scaler and the forest. It implements Predictor.
type Pipeline struct {
	scaler *StandardScaler
	forest *RandomForest
}

// NewPipeline wires a scaler and a forest into a Predictor.
func NewPipeline(scaler *StandardScaler, forest *RandomForest) (*Pipeline, error) {
	if scaler == nil || forest == nil {
		return nil, fmt.Errorf("%w: pipeline needs both scaler and model", ErrArtifact)
	}
	return &Pipeline{scaler: scaler, forest: forest}, nil
}

// Predict applies the scaler then the model to one raw feature vector.
func (p *Pipeline) Predict(ctx context.Context, v types.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("prediction canceled: %w", err)
	}
	scaled := p.scaler.Transform(v)
	out, err := p.forest.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("model inference: %w", err)
	}
	return out, nil
}

// Meta returns metadata about the loaded artifacts.
func (p *Pipeline) Meta() Meta {
	return Meta{
		Version:  p.forest.Version(),
		Trees:    p.forest.TreeCount(),
		Features: p.scaler.Features(),
	}
}
