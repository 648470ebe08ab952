package contact

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

// Submit handles the contact form (POST /contact). A rejected message is shown again for correction.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.catalog.Snapshot().RefreshedAt.IsZero() {
		if _, err := h.catalog.Refresh(r.Context()); err != nil {
			log.Errorf("failed to load catalog before contact: %v", err)
		}
	}

	result := h.controller.Submit(r.Context(), Form{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	})
	log.Debugf("contact form: %s", result.Outcome)

	state := page.State{
		Snapshot: h.catalog.Snapshot(),
		Alert:    result.Alert,
	}
	if result.Outcome == OutcomeSent {
		state.Notice = h.presenter.Labels().ContactSent
	} else {
		state.Contact = page.ContactDraft{
			Name:    result.Form.Name,
			Email:   result.Form.Email,
			Subject: result.Form.Subject,
			Message: result.Form.Message,
		}
	}
	h.presenter.Present(w, r, state)
}
