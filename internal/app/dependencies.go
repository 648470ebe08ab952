package app

import (
	"os"

	"github.com/campusevents/eventfront/internal/config"
	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/internal/metrics"
	"github.com/campusevents/eventfront/internal/utils"
	"github.com/campusevents/eventfront/pkg/booking"
	"github.com/campusevents/eventfront/pkg/contact"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/images"
	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/campusevents/eventfront/pkg/organizer"
	"github.com/campusevents/eventfront/pkg/page"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Metrics  *metrics.Metrics

	ApiClient eventapi.Client
	Catalog   *listing.Catalog

	ImageResolver *images.Resolver
	ImagesHandler *images.Handler

	Presenter   *page.Presenter
	PageHandler *page.Handler

	BookingController *booking.Controller
	BookingHandler    *booking.Handler

	OrganizerController *organizer.Controller
	OrganizerHandler    *organizer.Handler

	ContactController *contact.Controller
	ContactHandler    *contact.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
// Subscribers are registered before anything can publish: metrics first, then the catalog refresh.
func BuildDependencies(cfg config.Application, client eventapi.Client) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Metrics = metrics.NewMetrics()
	deps.Metrics.Subscribe(deps.EventBus)

	locale := listing.LocaleFor(cfg.Locale)

	deps.ApiClient = client
	deps.Catalog = listing.NewCatalog(deps.ApiClient, listing.NewTransformer(locale, deps.Clock), deps.EventBus, deps.Clock)
	deps.Catalog.Subscribe(deps.EventBus)

	imageFiles := os.DirFS(cfg.Images.Dir)
	deps.ImageResolver = images.NewResolver(imageFiles)
	deps.ImagesHandler = images.NewHandler(imageFiles)

	deps.Presenter = page.NewPresenter(page.NewRenderer(locale.Labels, deps.ImageResolver), locale, cfg.Booking.SuccessBanner)
	deps.PageHandler = page.NewHandler(deps.Catalog, deps.ApiClient, deps.Presenter)

	deps.BookingController = booking.NewController(deps.ApiClient, deps.Catalog, deps.EventBus, locale.Labels)
	deps.BookingHandler = booking.NewHandler(deps.BookingController, deps.Catalog, deps.Presenter)

	deps.OrganizerController = organizer.NewController(deps.ApiClient, deps.EventBus, locale.Labels)
	deps.OrganizerHandler = organizer.NewHandler(deps.OrganizerController, deps.Catalog, deps.Presenter)

	deps.ContactController = contact.NewController(deps.ApiClient, deps.EventBus, locale.Labels)
	deps.ContactHandler = contact.NewHandler(deps.ContactController, deps.Catalog, deps.Presenter)

	return deps
}
