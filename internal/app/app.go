package app

import (
	"context"
	"net/http"
	"time"

	"github.com/campusevents/eventfront/internal/config"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, the booking API client, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	log.Infof("Using booking API at %s", cfg.Api.BaseUrl)
	return newApplication(cfg, eventapi.NewClient(cfg.Api.BaseUrl, cfg.Api.Timeout)), nil
}

func newApplication(cfg config.Application, client eventapi.Client) *Application {
	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(cfg, client)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}
}

// Run loads the catalog once and starts the HTTP server. It blocks.
func (a *Application) Run() error {
	snapshot, err := a.deps.Catalog.Refresh(context.Background())
	if err != nil {
		log.Errorf("initial catalog load failed: %v", err)
	} else {
		log.Infof("Loaded %d events", len(snapshot.Events))
	}

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
