package eda

import "errors"

// Sentinel kinds for chart-building errors. These are the non-fatal,
// inline-reported failures of the exploration view.
var (
	ErrUnknownChart  = errors.New("unknown chart kind")
	ErrUnknownColumn = errors.New("column is not numeric or does not exist")
	ErrNoColumns     = errors.New("no columns selected")
	ErrNoData        = errors.New("no data points in selection")
)
