package predict

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/aqio/aqdash/internal/domain/types"
)

// leafMarker flags a node with no children; its Value is the tree output.
const leafMarker = -1

// Node is one decision node in a regression tree, stored flat by index.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a single regression tree as a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// eval walks the tree for one input vector.
func (t Tree) eval(v types.FeatureVector) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("%w: node index %d out of range", ErrArtifact, idx)
		}
		n := t.Nodes[idx]
		if n.Feature == leafMarker {
			return n.Value, nil
		}
		if n.Feature < 0 || n.Feature >= types.FeatureCount {
			return 0, fmt.Errorf("%w: split on feature %d", ErrDimension, n.Feature)
		}
		if v[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("%w: cycle detected in tree", ErrArtifact)
}

// RandomForest is a bagged ensemble of regression trees. Prediction is the
// mean of the per-tree outputs, matching the exported estimator.
type RandomForest struct {
	version string
	trees   []Tree
}

// NewRandomForest builds a forest from decoded trees.
func NewRandomForest(version string, trees []Tree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, ErrEmptyTree
	}
	for i, t := range trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d is empty", ErrEmptyTree, i)
		}
	}
	return &RandomForest{version: version, trees: trees}, nil
}

// Predict returns the forest's estimate for one scaled feature vector.
func (f *RandomForest) Predict(v types.FeatureVector) (float64, error) {
	outputs := make([]float64, len(f.trees))
	for i, t := range f.trees {
		out, err := t.eval(v)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		outputs[i] = out
	}
	return stat.Mean(outputs, nil), nil
}

// Version reports the model version string from the artifact.
func (f *RandomForest) Version() string {
	return f.version
}

// TreeCount reports the ensemble size.
func (f *RandomForest) TreeCount() int {
	return len(f.trees)
}
