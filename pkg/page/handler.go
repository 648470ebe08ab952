package page

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campusevents/eventfront/internal/rest"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/listing"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog   listing.Reader
	client    eventapi.Client
	presenter *Presenter
}

func NewHandler(catalog listing.Reader, client eventapi.Client, presenter *Presenter) *Handler {
	return &Handler{catalog: catalog, client: client, presenter: presenter}
}

// Index renders the events page. Every load re-runs the fetch/transform/aggregate cycle.
//
// Query parameters: q and category filter the cards, from and to (YYYY-MM-DD) restrict them to
// events available in that period, book={id} opens the booking modal, create=1 opens the
// creation modal, close={modal element id} is a backdrop click.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	state := State{
		Query:    query.Get("q"),
		Category: listing.Category(query.Get("category")),
		From:     query.Get("from"),
		To:       query.Get("to"),
	}
	state.Snapshot, state.RefreshErr = h.catalog.Refresh(ctx)

	if bookId := query.Get("book"); bookId != "" && state.RefreshErr == nil {
		id, err := strconv.Atoi(bookId)
		if err != nil {
			log.Debugf("ignoring invalid event id %q", bookId)
		} else if event, ok := h.bookingTarget(ctx, state.Snapshot, id); ok {
			state.Modals.OpenBooking(event)
		}
	}
	if query.Get("create") != "" {
		state.Modals.OpenCreate()
	}
	if target := query.Get("close"); target != "" {
		state.Modals.Backdrop(target)
	}

	if state.RefreshErr == nil {
		events, err := h.inPeriod(ctx, state.Snapshot.Events, state.From, state.To)
		if err != nil {
			state.Notice = h.presenter.Labels().DateFilterUnavailable
		} else {
			state.Snapshot.Events = events
		}
	}

	h.presenter.Present(w, r, state)
}

// Events godoc
// @Summary List active events
// @Description Display-ready events matching the optional q, category, from and to filters
// @Produce json
// @Success 200 {array} listing.ViewModel
// @Failure 503 {object} rest.ErrorResponse
// @Router /api/events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.catalog.Refresh(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusServiceUnavailable, "Failed to load events", err.Error())
		return
	}
	query := r.URL.Query()
	events, err := h.inPeriod(r.Context(), snapshot.Events, query.Get("from"), query.Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusServiceUnavailable, "Failed to search events by date", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, listing.Search(events, query.Get("q"), listing.Category(query.Get("category"))))
}

// bookingTarget finds the event to book. An id missing from the snapshot is looked up in the
// API, as it may have been created after the snapshot was taken.
func (h *Handler) bookingTarget(ctx context.Context, snapshot listing.Snapshot, id int) (listing.ViewModel, bool) {
	if event, ok := snapshot.Find(id); ok {
		return event, true
	}
	record, err := h.client.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, eventapi.ErrEventNotFound) {
			log.Debugf("ignoring unknown event id %d", id)
		} else {
			log.Errorf("failed to look up event %d: %v", id, err)
		}
		return listing.ViewModel{}, false
	}
	if !record.Status {
		return listing.ViewModel{}, false
	}
	return listing.ViewModel{Id: record.Id, Title: record.Name, Status: record.Status}, true
}

// inPeriod restricts events to the ones the API reports available between from and to.
// A single bound means that one day. Without bounds, or with a malformed or reversed period,
// events are returned unchanged.
func (h *Handler) inPeriod(ctx context.Context, events []listing.ViewModel, from, to string) ([]listing.ViewModel, error) {
	if from == "" && to == "" {
		return events, nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, errFrom := time.Parse(time.DateOnly, from)
	end, errTo := time.Parse(time.DateOnly, to)
	if errFrom != nil || errTo != nil || end.Before(start) {
		log.Debugf("ignoring invalid period %q..%q", from, to)
		return events, nil
	}

	available, err := h.client.AvailableEvents(ctx, start, end)
	if err != nil {
		log.Errorf("failed to search events between %s and %s: %v", from, to, err)
		return nil, err
	}
	ids := make([]int, 0, len(available))
	for _, e := range available {
		ids = append(ids, e.Id)
	}
	return listing.WithIds(events, ids), nil
}
