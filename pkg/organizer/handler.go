package organizer

import (
	"net/http"

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

// Submit handles the event creation modal (POST /events).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.catalog.Snapshot().RefreshedAt.IsZero() {
		if _, err := h.catalog.Refresh(r.Context()); err != nil {
			log.Errorf("failed to load catalog before event creation: %v", err)
		}
	}

	result := h.controller.Submit(r.Context(), Form{
		Name:          r.PostFormValue("name"),
		Type:          r.PostFormValue("type"),
		Description:   r.PostFormValue("description"),
		AvailableFrom: r.PostFormValue("availableFrom"),
		AvailableTo:   r.PostFormValue("availableTo"),
	})
	log.Debugf("event creation: %s", result.Outcome)

	state := page.State{
		Query:    r.PostFormValue("q"),
		Category: listing.Category(r.PostFormValue("category")),
		Snapshot: h.catalog.Snapshot(),
		Alert:    result.Alert,
	}
	if result.Outcome == OutcomeCreated {
		state.Success = h.presenter.Labels().EventCreated
	} else {
		state.Modals.OpenCreate()
		state.Modals.Create.Name = result.Form.Name
		state.Modals.Create.Type = result.Form.Type
		state.Modals.Create.Description = result.Form.Description
		state.Modals.Create.AvailableFrom = result.Form.AvailableFrom
		state.Modals.Create.AvailableTo = result.Form.AvailableTo
	}
	h.presenter.Present(w, r, state)
}
