package repository

// Option applies a configuration option to the CSVStore loader.
type Option func(*CSVStore)

// WithStationColumn overrides the name of the station identifier column.
func WithStationColumn(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.stationColumn = name
		}
	}
}

// WithMissingTokens sets the cell values treated as missing.
func WithMissingTokens(tokens ...string) Option {
	return func(s *CSVStore) {
		if len(tokens) > 0 {
			s.missingTokens = make(map[string]bool, len(tokens))
			for _, t := range tokens {
				s.missingTokens[t] = true
			}
		}
	}
}
