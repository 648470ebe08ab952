package app

import (
	"net/http"

	"github.com/campusevents/eventfront/internal/config"
	"github.com/campusevents/eventfront/pkg/page"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all page, form and API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events page
	r.HandleFunc("/", deps.PageHandler.Index).Methods("GET")
	r.HandleFunc("/api/events", deps.PageHandler.Events).Methods("GET")

	// Modal forms
	r.HandleFunc("/booking", deps.BookingHandler.Submit).Methods("POST")
	r.HandleFunc("/events", deps.OrganizerHandler.Submit).Methods("POST")
	r.HandleFunc("/contact", deps.ContactHandler.Submit).Methods("POST")

	// Event images with extension fallback
	r.HandleFunc("/img/{name}", deps.ImagesHandler.Serve).Methods("GET")

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServerFS(page.Assets()))).Methods("GET")

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}
}
