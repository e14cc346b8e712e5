package eda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default chart configuration. Overridable per request via Options.
const (
	DefaultHistogramBins   = 50
	DefaultPairplotWarnAt  = 5
	DefaultPairplotMaxDots = 2000
)

// Options tune chart construction.
type Options struct {
	HistogramBins   int
	PairplotWarnAt  int
	PairplotMaxDots int
}

func (o Options) withDefaults() Options {
	if o.HistogramBins <= 0 {
		o.HistogramBins = DefaultHistogramBins
	}
	if o.PairplotWarnAt <= 0 {
		o.PairplotWarnAt = DefaultPairplotWarnAt
	}
	if o.PairplotMaxDots <= 0 {
		o.PairplotMaxDots = DefaultPairplotMaxDots
	}
	return o
}

// Request names a chart kind and, for pairplots, the chosen columns.
type Request struct {
	Kind    ChartKind
	Columns []string
}

// BuildChart dispatches to the builder for the requested kind.
func BuildChart(t Table, req Request, opts Options) (*Chart, error) {
	opts = opts.withDefaults()
	switch req.Kind {
	case KindDistribution:
		return BuildDistribution(t, "PM2.5", opts.HistogramBins)
	case KindCorrelation:
		return BuildCorrelation(t)
	case KindPairplot:
		return BuildPairplot(t, req.Columns, opts.PairplotWarnAt, opts.PairplotMaxDots)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, req.Kind)
	}
}

// BuildDistribution bins one numeric column into a histogram series.
func BuildDistribution(t Table, column string, bins int) (*Chart, error) {
	values, ok := t.Numeric(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	values = dropNaN(values)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoData, column)
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		// Degenerate column; a single bin keeps the chart renderable.
		return &Chart{
			Kind:   KindDistribution,
			Title:  fmt.Sprintf("Distribution of %s", column),
			XAxis:  column,
			YAxis:  "Frequency",
			Series: []Series{{Name: column, Points: []Point{{Label: formatBin(lo), Value: float64(len(values))}}}},
		}, nil
	}

	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	points := make([]Point, bins)
	for i := range counts {
		center := lo + (float64(i)+0.5)*width
		points[i] = Point{Label: formatBin(center), Value: counts[i]}
	}
	return &Chart{
		Kind:   KindDistribution,
		Title:  fmt.Sprintf("Distribution of %s", column),
		XAxis:  column,
		YAxis:  "Frequency",
		Series: []Series{{Name: column, Points: points}},
	}, nil
}

// BuildCorrelation computes a pairwise-complete correlation matrix over all
// numeric columns.
func BuildCorrelation(t Table) (*Chart, error) {
	columns := t.NumericColumns()
	if len(columns) < 2 {
		return nil, fmt.Errorf("%w: correlation needs at least two numeric columns", ErrNoData)
	}

	series := make([][]float64, len(columns))
	for i, col := range columns {
		values, ok := t.Numeric(col)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		series[i] = values
	}

	matrix := make([][]float64, len(columns))
	for i := range columns {
		matrix[i] = make([]float64, len(columns))
		matrix[i][i] = 1
		for j := i + 1; j < len(columns); j++ {
			x, y := pairwiseComplete(series[i], series[j])
			r := 0.0
			if len(x) > 1 {
				r = stat.Correlation(x, y, nil)
				if math.IsNaN(r) {
					r = 0
				}
			}
			matrix[i][j] = RoundTo2(r)
		}
	}
	// Mirror the upper triangle.
	for i := range columns {
		for j := 0; j < i; j++ {
			matrix[i][j] = matrix[j][i]
		}
	}

	return &Chart{
		Kind:   KindCorrelation,
		Title:  "Correlation Heatmap",
		Matrix: &Matrix{Columns: columns, Values: matrix},
	}, nil
}

// BuildPairplot produces scatter points for each column pair. Selections of
// more than warnAt columns attach a performance warning but still render.
func BuildPairplot(t Table, columns []string, warnAt, maxDots int) (*Chart, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	series := make(map[string][]float64, len(columns))
	for _, col := range columns {
		values, ok := t.Numeric(col)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		series[col] = values
	}

	chart := &Chart{
		Kind:  KindPairplot,
		Title: "Pairplot of Selected Features",
	}
	if len(columns) > warnAt {
		chart.Warnings = append(chart.Warnings,
			fmt.Sprintf("%d features selected; rendering may be slow", len(columns)))
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			x, y := pairwiseComplete(series[columns[i]], series[columns[j]])
			points := scatterPoints(x, y, maxDots)
			chart.Pairs = append(chart.Pairs, ScatterPair{
				X:      columns[i],
				Y:      columns[j],
				Points: points,
			})
		}
	}
	if len(chart.Pairs) == 0 {
		return nil, fmt.Errorf("%w: pairplot needs at least two columns", ErrNoData)
	}
	return chart, nil
}

// pairwiseComplete keeps only indices where both series have a value.
func pairwiseComplete(a, b []float64) ([]float64, []float64) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

// scatterPoints subsamples with a fixed stride so big stations stay cheap to
// render while preserving determinism.
func scatterPoints(x, y []float64, maxDots int) [][2]float64 {
	stride := 1
	if len(x) > maxDots {
		stride = (len(x) + maxDots - 1) / maxDots
	}
	points := make([][2]float64, 0, maxDots)
	for i := 0; i < len(x); i += stride {
		points = append(points, [2]float64{RoundTo2(x[i]), RoundTo2(y[i])})
	}
	return points
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func formatBin(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
