package predict

import "errors"

// Sentinel kinds for prediction artifact errors.
var (
	ErrArtifact  = errors.New("artifact load failed")
	ErrDimension = errors.New("feature dimension mismatch")
	ErrEmptyTree = errors.New("model has no trees")
)
