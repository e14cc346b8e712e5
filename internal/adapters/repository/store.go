package repository

// Dataset is the read-only view of the loaded observations. The store is
// populated once at startup and never written afterwards, so all methods are
// safe for concurrent readers without locking.
type Dataset interface {
	// Columns returns the dataset header in file order.
	Columns() []string

	// Rows returns the total row count across all stations.
	Rows() int

	// Stations returns the distinct station identifiers present, sorted.
	Stations() []string

	// StationCounts returns the row count per station.
	StationCounts() map[string]int

	// ByStation returns the subset of rows matching the station identifier.
	// An unknown station yields an empty subset, never an error.
	ByStation(station string) *Subset

	// All returns a subset spanning every row.
	All() *Subset
}
