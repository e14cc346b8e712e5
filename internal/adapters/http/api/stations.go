// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// StationsDependencies defines the interface for station listing.
type StationsDependencies interface {
	Stations(ctx context.Context) []StationInfo
}

// StationsHandler handles station listing requests.
type StationsHandler struct {
	deps StationsDependencies
}

// NewStationsHandler creates a new stations handler.
func NewStationsHandler(deps StationsDependencies) *StationsHandler {
	return &StationsHandler{deps: deps}
}

// HandleGetStations handles GET /api/stations requests.
func (h *StationsHandler) HandleGetStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Stations(r.Context()))
}
