package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type Outcome int

const (
	// OutcomeAborted means there was no valid target event. Nothing is shown.
	OutcomeAborted Outcome = iota
	OutcomeFull
	OutcomeInvalid
	OutcomeBooked
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAborted:
		return "aborted"
	case OutcomeFull:
		return "full"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeBooked:
		return "booked"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// KeepsModalOpen reports whether the booking modal stays open so the user can correct the form.
func (o Outcome) KeepsModalOpen() bool {
	return o == OutcomeInvalid || o == OutcomeFailed
}

type Form struct {
	StudentId string `validate:"required"`
	Name      string `validate:"required"`
	Surname   string `validate:"required"`
}

func (f Form) trimmed() Form {
	return Form{
		StudentId: strings.TrimSpace(f.StudentId),
		Name:      strings.TrimSpace(f.Name),
		Surname:   strings.TrimSpace(f.Surname),
	}
}

type Result struct {
	Outcome     Outcome
	Event       listing.ViewModel
	Alert       string
	Reservation eventapi.ReservationRecord
}

type Controller struct {
	client   eventapi.Client
	catalog  listing.Reader
	bus      *event_bus.EventBus
	labels   listing.Labels
	validate *validator.Validate
}

func NewController(client eventapi.Client, catalog listing.Reader, bus *event_bus.EventBus, labels listing.Labels) *Controller {
	return &Controller{
		client:   client,
		catalog:  catalog,
		bus:      bus,
		labels:   labels,
		validate: validator.New(),
	}
}

// Submit books targetId for the student in form. The guards run in order: unknown target,
// no free seats, empty fields. Only then is the API called, once and without retry.
// Name and Surname are checked but not sent.
func (c *Controller) Submit(ctx context.Context, targetId int, form Form) Result {
	event, ok := c.catalog.Find(targetId)
	if !ok && targetId != 0 {
		event, ok = c.lookup(ctx, targetId)
	}
	if targetId == 0 || !ok {
		log.Debugf("booking aborted, unknown event %d", targetId)
		return Result{Outcome: OutcomeAborted}
	}
	if event.IsFull() {
		return Result{Outcome: OutcomeFull, Event: event, Alert: c.labels.AllSeatsTaken}
	}

	form = form.trimmed()
	if err := c.validate.Struct(form); err != nil {
		log.Debugf("booking form for event %d rejected: %v", targetId, err)
		return Result{Outcome: OutcomeInvalid, Event: event, Alert: c.labels.FillAllFields}
	}

	reservation, err := c.client.CreateReservation(ctx, eventapi.ReservationInput{
		EventId: targetId,
		CheckIn: form.StudentId,
		Status:  true,
	})
	if err != nil {
		log.Errorf("failed to book event %d: %v", targetId, err)
		alert := c.labels.BookingFailed
		var apiErr *eventapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			alert = apiErr.Message
		}
		return Result{Outcome: OutcomeFailed, Event: event, Alert: alert}
	}

	if c.bus != nil {
		err = c.bus.Publish(event_bus.NewEvent(ctx, event_bus.ReservationCreatedType, event_bus.ReservationCreated{
			ReservationId: reservation.Id,
			EventId:       targetId,
			CheckIn:       form.StudentId,
		}))
		if err != nil {
			log.Errorf("reservation %d created but subscribers failed: %v", reservation.Id, err)
		}
	}
	return Result{Outcome: OutcomeBooked, Event: event, Reservation: reservation}
}

// lookup reloads the catalog when the API knows an event the current snapshot does not.
func (c *Controller) lookup(ctx context.Context, id int) (listing.ViewModel, bool) {
	if _, err := c.client.GetEvent(ctx, id); err != nil {
		if !errors.Is(err, eventapi.ErrEventNotFound) {
			log.Errorf("failed to look up event %d: %v", id, err)
		}
		return listing.ViewModel{}, false
	}
	if _, err := c.catalog.Refresh(ctx); err != nil {
		log.Errorf("failed to reload catalog for event %d: %v", id, err)
		return listing.ViewModel{}, false
	}
	return c.catalog.Find(id)
}
