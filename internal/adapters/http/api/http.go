// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aqio/aqdash/internal/domain/eda"
	"github.com/aqio/aqdash/internal/domain/types"
)

// Dependencies bundles the operations the handlers need. Using an interface
// keeps the handler layer loosely coupled to the app service so tests can
// substitute a stub.
type Dependencies interface {
	// Stations lists the enumerated stations with descriptions.
	Stations(ctx context.Context) []StationInfo

	// Overview assembles the summary view for one station.
	Overview(ctx context.Context, station string) Overview

	// Chart builds one of the exploratory charts for a station.
	Chart(ctx context.Context, station string, req eda.Request) (*eda.Chart, error)

	// Predict runs the scaler and model over one raw feature vector.
	Predict(ctx context.Context, v types.FeatureVector) (Prediction, error)
}

// Read shapes mirrored from the domain layer.
type (
	StationInfo = types.StationInfo
	Overview    = types.Overview
	Prediction  = types.Prediction
)

// Server wires HTTP routes for the dashboard API.
type Server struct {
	stationsHandler  *StationsHandler
	overviewHandler  *OverviewHandler
	chartsHandler    *ChartsHandler
	predictHandler   *PredictHandler
	statsHandler     *StatsHandler
	healthHandler    *HealthHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		stationsHandler:  NewStationsHandler(deps),
		overviewHandler:  NewOverviewHandler(deps),
		chartsHandler:    NewChartsHandler(deps),
		predictHandler:   NewPredictHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		healthHandler:    NewHealthHandler(),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/stations", MetricsMiddleware(s.stationsHandler.HandleGetStations, "stations"))
	mux.HandleFunc("/api/overview", MetricsMiddleware(s.overviewHandler.HandleGetOverview, "overview"))
	mux.HandleFunc("/api/eda", MetricsMiddleware(s.chartsHandler.HandleGetChart, "eda"))
	mux.HandleFunc("/api/predict", MetricsMiddleware(s.predictHandler.HandlePostPredict, "predict"))
	mux.HandleFunc("/", s.dashboardHandler.HandleDashboard)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
