// Package repository provides the in-memory dataset store backing the
// dashboard views.
package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNoStationColumn = errors.New("station column not found in dataset")
	ErrEmptyDataset    = errors.New("dataset contains no rows")
	ErrBadHeader       = errors.New("dataset header is malformed")
	ErrMalformedRow    = errors.New("dataset contains a malformed row")
)
