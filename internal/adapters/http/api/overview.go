// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aqio/aqdash/internal/domain/types"
)

// OverviewDependencies defines the interface for the summary view.
type OverviewDependencies interface {
	Overview(ctx context.Context, station string) Overview
}

// OverviewHandler handles data-overview requests.
type OverviewHandler struct {
	deps OverviewDependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps OverviewDependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleGetOverview handles GET /api/overview?station=NAME requests.
func (h *OverviewHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	station := r.URL.Query().Get("station")
	if !types.Station(station).Valid() {
		writeError(w, http.StatusBadRequest, "unknown_station",
			fmt.Errorf("%w: %q", ErrUnknownStation, station))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Overview(r.Context(), station))
}
