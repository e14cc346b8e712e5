package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// CSVStore holds the dataset in memory: raw cells for tabular display plus
// parsed numeric columns for statistics. Storage is columnar for the numeric
// side so EDA can slice columns without per-row allocation.
type CSVStore struct {
	stationColumn string
	missingTokens map[string]bool

	header     []string
	cells      [][]string // row-major raw values, len(header) each
	numeric    map[string][]float64
	numericOrd []string
	stationIdx map[string][]int
	stations   []string
}

// Load reads a CSV dataset from path. Any failure is terminal for startup.
func Load(path string, opts ...Option) (*CSVStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f, opts...)
}

// LoadReader reads a CSV dataset from r.
func LoadReader(r io.Reader, opts ...Option) (*CSVStore, error) {
	s := &CSVStore{
		stationColumn: "station",
		missingTokens: map[string]bool{"": true, "NA": true, "NaN": true},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.read(r); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSVStore) read(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	s.header = make([]string, len(header))
	stationCol := -1
	for i, h := range header {
		s.header[i] = strings.TrimSpace(h)
		if s.header[i] == s.stationColumn {
			stationCol = i
		}
	}
	if stationCol < 0 {
		return fmt.Errorf("%w: %q", ErrNoStationColumn, s.stationColumn)
	}

	s.stationIdx = make(map[string][]int)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed dataset is terminal for startup.
			return fmt.Errorf("%w: row %d: %w", ErrMalformedRow, len(s.cells)+2, err)
		}
		cells := make([]string, len(s.header))
		for i := range s.header {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
		}
		idx := len(s.cells)
		s.cells = append(s.cells, cells)
		s.stationIdx[cells[stationCol]] = append(s.stationIdx[cells[stationCol]], idx)
	}
	if len(s.cells) == 0 {
		return ErrEmptyDataset
	}

	s.stations = make([]string, 0, len(s.stationIdx))
	for st := range s.stationIdx {
		s.stations = append(s.stations, st)
	}
	sort.Strings(s.stations)

	s.parseNumericColumns()
	return nil
}

// parseNumericColumns classifies each column: a column is numeric when every
// non-missing cell parses as a float. Missing cells become NaN.
func (s *CSVStore) parseNumericColumns() {
	s.numeric = make(map[string][]float64)
	for col, name := range s.header {
		if name == s.stationColumn {
			continue
		}
		values := make([]float64, len(s.cells))
		numeric := true
		seen := false
		for row, cells := range s.cells {
			cell := cells[col]
			if s.missingTokens[cell] {
				values[row] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values[row] = f
			seen = true
		}
		if numeric && seen {
			s.numeric[name] = values
			s.numericOrd = append(s.numericOrd, name)
		}
	}
}

func (s *CSVStore) Columns() []string {
	return append([]string(nil), s.header...)
}

func (s *CSVStore) Rows() int {
	return len(s.cells)
}

func (s *CSVStore) Stations() []string {
	return append([]string(nil), s.stations...)
}

func (s *CSVStore) StationCounts() map[string]int {
	counts := make(map[string]int, len(s.stationIdx))
	for st, rows := range s.stationIdx {
		counts[st] = len(rows)
	}
	return counts
}

func (s *CSVStore) ByStation(station string) *Subset {
	return &Subset{store: s, rows: s.stationIdx[station]}
}

func (s *CSVStore) All() *Subset {
	rows := make([]int, len(s.cells))
	for i := range rows {
		rows[i] = i
	}
	return &Subset{store: s, rows: rows}
}
