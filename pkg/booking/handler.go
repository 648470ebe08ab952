package booking

import (
	"net/http"
	"strconv"

	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/campusevents/eventfront/pkg/page"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	controller *Controller
	catalog    listing.Reader
	presenter  *page.Presenter
}

func NewHandler(controller *Controller, catalog listing.Reader, presenter *page.Presenter) *Handler {
	return &Handler{controller: controller, catalog: catalog, presenter: presenter}
}

// Submit handles the booking modal form (POST /booking) and renders the page with the outcome.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.catalog.Snapshot().RefreshedAt.IsZero() {
		if _, err := h.catalog.Refresh(r.Context()); err != nil {
			log.Errorf("failed to load catalog before booking: %v", err)
		}
	}

	targetId, err := strconv.Atoi(r.PostFormValue("eventId"))
	if err != nil {
		log.Debugf("booking without valid event id %q", r.PostFormValue("eventId"))
		targetId = 0
	}
	form := Form{
		StudentId: r.PostFormValue("bookingId"),
		Name:      r.PostFormValue("bookingName"),
		Surname:   r.PostFormValue("bookingSurname"),
	}

	result := h.controller.Submit(r.Context(), targetId, form)
	log.Debugf("booking of event %d: %s", targetId, result.Outcome)

	state := page.State{
		Query:    r.PostFormValue("q"),
		Category: listing.Category(r.PostFormValue("category")),
		Snapshot: h.catalog.Snapshot(),
		Alert:    result.Alert,
	}
	if result.Outcome.KeepsModalOpen() {
		state.Modals.OpenBooking(result.Event)
		state.Modals.Booking.StudentId = form.StudentId
		state.Modals.Booking.Name = form.Name
		state.Modals.Booking.Surname = form.Surname
	}
	if result.Outcome == OutcomeBooked {
		state.Success = h.presenter.Labels().BookingSucceeded
	}
	h.presenter.Present(w, r, state)
}
