// Package eda builds the exploratory views: summary metrics and the three
// chart kinds the dashboard offers. Builders are pure functions over a Table
// so they can be tested without a loaded dataset.
package eda

import "math"

// Table is the read contract the builders need from a filtered dataset.
type Table interface {
	Len() int
	NumericColumns() []string
	Numeric(column string) ([]float64, bool)
}

// ChartKind selects one of the supported visualizations.
type ChartKind string

const (
	KindDistribution ChartKind = "distribution"
	KindCorrelation  ChartKind = "correlation"
	KindPairplot     ChartKind = "pairplot"
)

// Valid reports whether k names a supported chart kind.
func (k ChartKind) Valid() bool {
	switch k {
	case KindDistribution, KindCorrelation, KindPairplot:
		return true
	}
	return false
}

// Chart is the render-ready output. Exactly one of Series, Matrix or Pairs
// is populated depending on Kind.
type Chart struct {
	Kind     ChartKind     `json:"kind"`
	Title    string        `json:"title"`
	XAxis    string        `json:"xAxis,omitempty"`
	YAxis    string        `json:"yAxis,omitempty"`
	Series   []Series      `json:"series,omitempty"`
	Matrix   *Matrix       `json:"matrix,omitempty"`
	Pairs    []ScatterPair `json:"pairs,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Series is a labeled sequence of points, used for histograms.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is a single labeled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Matrix is a square correlation matrix with its column labels.
type Matrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// ScatterPair holds the points for one cell of a pairwise scatter grid.
type ScatterPair struct {
	X      string       `json:"x"`
	Y      string       `json:"y"`
	Points [][2]float64 `json:"points"`
}

// RoundTo2 rounds to two decimal places for display values.
func RoundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}
