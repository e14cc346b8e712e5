// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aqio/aqdash/internal/domain/eda"
	"github.com/aqio/aqdash/internal/domain/types"
)

// ChartsDependencies defines the interface for the exploration view.
type ChartsDependencies interface {
	Chart(ctx context.Context, station string, req eda.Request) (*eda.Chart, error)
}

// ChartsHandler handles EDA chart requests.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /api/eda?station=&chart=&columns=a,b requests.
// Chart failures are reported inline with 422; the rest of the dashboard is
// unaffected.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	station := q.Get("station")
	if !types.Station(station).Valid() {
		writeError(w, http.StatusBadRequest, "unknown_station",
			fmt.Errorf("%w: %q", ErrUnknownStation, station))
		return
	}

	kind := eda.ChartKind(q.Get("chart"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown_chart",
			fmt.Errorf("%w: chart %q", ErrBadRequest, q.Get("chart")))
		return
	}

	req := eda.Request{Kind: kind, Columns: splitColumns(q.Get("columns"))}
	chart, err := h.deps.Chart(r.Context(), station, req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "chart_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// splitColumns parses the comma-separated column selection, dropping empties.
func splitColumns(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
