package organizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeCreated
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeCreated:
		return "created"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Form is the event creation modal. Dates are calendar dates without time.
type Form struct {
	Name          string `validate:"required,min=3,max=40"`
	Type          string `validate:"required,oneof=CONCERT WORKSHOP CONFERENCE"`
	Description   string `validate:"required"`
	AvailableFrom string `validate:"required,datetime=2006-01-02"`
	AvailableTo   string `validate:"required,datetime=2006-01-02"`
}

func (f Form) trimmed() Form {
	return Form{
		Name:          strings.TrimSpace(f.Name),
		Type:          strings.ToUpper(strings.TrimSpace(f.Type)),
		Description:   strings.TrimSpace(f.Description),
		AvailableFrom: strings.TrimSpace(f.AvailableFrom),
		AvailableTo:   strings.TrimSpace(f.AvailableTo),
	}
}

// validateDateOrder rejects a period ending before it starts.
func validateDateOrder(sl validator.StructLevel) {
	f := sl.Current().Interface().(Form)
	from, err := time.Parse(time.DateOnly, f.AvailableFrom)
	if err != nil {
		return
	}
	to, err := time.Parse(time.DateOnly, f.AvailableTo)
	if err != nil {
		return
	}
	if to.Before(from) {
		sl.ReportError(f.AvailableTo, "AvailableTo", "AvailableTo", "afterfrom", f.AvailableFrom)
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateDateOrder, Form{})
	return v
}

type Result struct {
	Outcome Outcome
	Form    Form
	Alert   string
	EventId int
}

type Controller struct {
	client   eventapi.Client
	bus      *event_bus.EventBus
	labels   listing.Labels
	validate *validator.Validate
}

func NewController(client eventapi.Client, bus *event_bus.EventBus, labels listing.Labels) *Controller {
	return &Controller{
		client:   client,
		bus:      bus,
		labels:   labels,
		validate: newValidator(),
	}
}

// Submit creates an active event from form. Result.Form holds the trimmed input so a
// rejected form can be shown again.
func (c *Controller) Submit(ctx context.Context, form Form) Result {
	form = form.trimmed()
	if err := c.validate.Struct(form); err != nil {
		log.Debugf("event form rejected: %v", err)
		return Result{Outcome: OutcomeInvalid, Form: form, Alert: c.labels.EventFormInvalid}
	}

	id, err := c.client.CreateEvent(ctx, eventapi.EventInput{
		Name:          form.Name,
		Type:          eventapi.EventType(form.Type),
		Description:   form.Description,
		AvailableFrom: form.AvailableFrom,
		AvailableTo:   form.AvailableTo,
		Status:        true,
	})
	if err != nil {
		log.Errorf("failed to create event %q: %v", form.Name, err)
		alert := c.labels.EventCreateFailed
		var apiErr *eventapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			alert = apiErr.Message
		}
		return Result{Outcome: OutcomeFailed, Form: form, Alert: alert}
	}

	if c.bus != nil {
		err = c.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventCreatedType, event_bus.EventCreated{Id: id, Name: form.Name}))
		if err != nil {
			log.Errorf("event %d created but subscribers failed: %v", id, err)
		}
	}
	return Result{Outcome: OutcomeCreated, Form: form, EventId: id}
}
