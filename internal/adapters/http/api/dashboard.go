package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/dashboard.html
var staticFS embed.FS

// dashboardHandler serves the embedded single-page dashboard. The page polls
// /stats, /summary and /at-risk from the browser.
type dashboardHandler struct {
	files fs.FS
}

func newDashboardHandler() *dashboardHandler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &dashboardHandler{files: sub}
}

// HandleDashboard handles GET /dashboard.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, h.files, "dashboard.html")
}
