// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// dashboardHandler serves the embedded single-page dashboard.
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET / and GET /dashboard requests with the
// embedded dashboard page. The page drives the JSON API client-side.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, dashboardFS, "dashboard.html")
}
