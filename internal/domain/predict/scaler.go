package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aqio/aqdash/internal/domain/types"
)

// StandardScaler normalizes a raw feature vector into the space the model
// was trained in: (x - mean) / scale, elementwise. Mean and scale come from
// the exported scaler artifact and are immutable after load.
type StandardScaler struct {
	features []string
	mean     *mat.VecDense
	scale    *mat.VecDense
}

// NewStandardScaler builds a scaler from per-feature means and scales.
func NewStandardScaler(features []string, mean, scale []float64) (*StandardScaler, error) {
	if len(features) != types.FeatureCount || len(mean) != types.FeatureCount || len(scale) != types.FeatureCount {
		return nil, fmt.Errorf("%w: scaler expects %d features, got features=%d mean=%d scale=%d",
			ErrDimension, types.FeatureCount, len(features), len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("%w: zero scale for feature %q", ErrArtifact, features[i])
		}
	}
	return &StandardScaler{
		features: append([]string(nil), features...),
		mean:     mat.NewVecDense(types.FeatureCount, append([]float64(nil), mean...)),
		scale:    mat.NewVecDense(types.FeatureCount, append([]float64(nil), scale...)),
	}, nil
}

// Transform maps a raw vector into the scaled feature space.
func (s *StandardScaler) Transform(v types.FeatureVector) types.FeatureVector {
	var out mat.VecDense
	out.SubVec(mat.NewVecDense(types.FeatureCount, v[:]), s.mean)
	out.DivElemVec(&out, s.scale)

	var scaled types.FeatureVector
	copy(scaled[:], out.RawVector().Data)
	return scaled
}

// Features returns the feature names in the order the scaler expects.
func (s *StandardScaler) Features() []string {
	return append([]string(nil), s.features...)
}
