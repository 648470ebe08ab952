package contact

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
	OutcomeInvalid Outcome = iota
	OutcomeSent
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Form is the contact form. The limits match the ones the booking API enforces.
type Form struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required,min=3,max=200"`
	Message string `validate:"required,min=10,max=2000"`
}

func (f Form) trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

type Result struct {
	Outcome Outcome
	Form    Form
	Alert   string
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
		validate: validator.New(),
	}
}

// Submit validates the form and sends it to the API once.
func (c *Controller) Submit(ctx context.Context, form Form) Result {
	form = form.trimmed()
	if err := c.validate.Struct(form); err != nil {
		log.Debugf("contact form rejected: %v", err)
		return Result{Outcome: OutcomeInvalid, Form: form, Alert: c.labels.ContactInvalid}
	}

	err := c.client.SendFeedback(ctx, eventapi.FeedbackInput{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		log.Errorf("failed to send contact message from %q: %v", form.Email, err)
		alert := c.labels.ContactFailed
		var apiErr *eventapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			alert = apiErr.Message
		}
		return Result{Outcome: OutcomeFailed, Form: form, Alert: alert}
	}

	if c.bus != nil {
		err = c.bus.Publish(event_bus.NewEvent(ctx, event_bus.FeedbackSentType, event_bus.FeedbackSent{Email: form.Email, Subject: form.Subject}))
		if err != nil {
			log.Errorf("feedback sent but subscribers failed: %v", err)
		}
	}
	log.Infof("contact message from %q sent", form.Email)
	return Result{Outcome: OutcomeSent, Form: form}
}
