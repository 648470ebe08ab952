package eventapi

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ClientStub is an in-memory Client. CreateReservation appends to the reservation list,
// so a following ListReservations sees it.
type ClientStub struct {
	mu                   sync.RWMutex
	events               []EventRecord
	reservations         []ReservationRecord
	nextId               int
	listEventsErr        error
	listReservationsErr  error
	createReservationErr error
	createEventErr       error
	availableEventsErr   error
	sendFeedbackErr      error
	ListEventsCalls      int
	CreatedReservations  []ReservationInput
	SentFeedback         []FeedbackInput
}

func NewClientStub() *ClientStub {
	return &ClientStub{nextId: 1000}
}

func (c *ClientStub) SetEvents(events ...EventRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append([]EventRecord(nil), events...)
}

func (c *ClientStub) SetReservations(reservations ...ReservationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reservations = append([]ReservationRecord(nil), reservations...)
}

func (c *ClientStub) FailListEvents(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listEventsErr = err
}

func (c *ClientStub) FailListReservations(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listReservationsErr = err
}

func (c *ClientStub) FailCreateReservation(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createReservationErr = err
}

func (c *ClientStub) FailCreateEvent(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createEventErr = err
}

func (c *ClientStub) FailAvailableEvents(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.availableEventsErr = err
}

func (c *ClientStub) FailSendFeedback(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendFeedbackErr = err
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
	c.reservations = nil
	c.listEventsErr = nil
	c.listReservationsErr = nil
	c.createReservationErr = nil
	c.createEventErr = nil
	c.availableEventsErr = nil
	c.sendFeedbackErr = nil
	c.ListEventsCalls = 0
	c.CreatedReservations = nil
	c.SentFeedback = nil
}

func (c *ClientStub) ListEvents(ctx context.Context) ([]EventRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ListEventsCalls++
	if c.listEventsErr != nil {
		return nil, c.listEventsErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]EventRecord, len(c.events))
	copy(result, c.events)
	return result, nil
}

func (c *ClientStub) ListReservations(ctx context.Context) ([]ReservationRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.listReservationsErr != nil {
		return nil, c.listReservationsErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]ReservationRecord, len(c.reservations))
	copy(result, c.reservations)
	return result, nil
}

func (c *ClientStub) CreateReservation(ctx context.Context, in ReservationInput) (ReservationRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CreatedReservations = append(c.CreatedReservations, in)
	if c.createReservationErr != nil {
		return ReservationRecord{}, c.createReservationErr
	}
	c.nextId++
	created := ReservationRecord{Id: c.nextId, EventId: in.EventId, CheckIn: in.CheckIn, Status: in.Status}
	c.reservations = append(c.reservations, created)
	return created, nil
}

func (c *ClientStub) GetEvent(ctx context.Context, id int) (EventRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.Id == id {
			return e, nil
		}
	}
	return EventRecord{}, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
}

func (c *ClientStub) AvailableEvents(ctx context.Context, from, to time.Time) ([]EventRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.availableEventsErr != nil {
		return nil, c.availableEventsErr
	}
	result := make([]EventRecord, 0)
	for _, e := range c.events {
		start, err := time.Parse(time.DateOnly, e.AvailableFrom)
		if err != nil {
			continue
		}
		if !start.Before(from) && !start.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (c *ClientStub) CreateEvent(ctx context.Context, in EventInput) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createEventErr != nil {
		return 0, c.createEventErr
	}
	if in.Name == "" {
		return 0, &APIError{StatusCode: 400, Message: "Event name is mandatory"}
	}
	c.nextId++
	c.events = append(c.events, EventRecord{
		Id:            c.nextId,
		Name:          in.Name,
		Type:          in.Type,
		Description:   in.Description,
		AvailableFrom: in.AvailableFrom,
		AvailableTo:   in.AvailableTo,
		Status:        in.Status,
	})
	return c.nextId, nil
}

// SendFeedback records the message. Sending is recorded even when it fails.
func (c *ClientStub) SendFeedback(ctx context.Context, in FeedbackInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SentFeedback = append(c.SentFeedback, in)
	return c.sendFeedbackErr
}

var _ Client = (*ClientStub)(nil)
var _ Client = (*ClientImpl)(nil)
