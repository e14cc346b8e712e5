package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// scalerArtifact is the on-disk shape of the exported scaler.
type scalerArtifact struct {
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

// modelArtifact is the on-disk shape of the exported random forest.
type modelArtifact struct {
	ModelVersion string `json:"model_version"`
	NFeatures    int    `json:"n_features"`
	Trees        []Tree `json:"trees"`
}

// LoadScaler reads and validates a scaler artifact file.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read scaler %s: %w", ErrArtifact, path, err)
	}
	var a scalerArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode scaler %s: %w", ErrArtifact, path, err)
	}
	return NewStandardScaler(a.Features, a.Mean, a.Scale)
}

// LoadModel reads and validates a model artifact file.
func LoadModel(path string) (*RandomForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model %s: %w", ErrArtifact, path, err)
	}
	var a modelArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode model %s: %w", ErrArtifact, path, err)
	}
	forest, err := NewRandomForest(a.ModelVersion, a.Trees)
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// LoadPipeline loads both artifacts and wires them into a Predictor. This is
// the startup entry point; any failure here is terminal for the session.
func LoadPipeline(scalerPath, modelPath string) (*Pipeline, error) {
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	forest, err := LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewPipeline(scaler, forest)
}
