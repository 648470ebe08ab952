package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/internal/utils"
	"github.com/campusevents/eventfront/pkg/eventapi"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the result of one refresh cycle. A failed listing call leaves its side empty
// and its error set, so callers can tell "no events" from "events unavailable".
// Events is replaced wholesale on refresh and must not be modified by readers.
type Snapshot struct {
	Events          []ViewModel
	EventsErr       error
	ReservationsErr error
	RefreshedAt     time.Time
}

func (s Snapshot) Find(id int) (ViewModel, bool) {
	for _, e := range s.Events {
		if e.Id == id {
			return e, true
		}
	}
	return ViewModel{}, false
}

type Reader interface {
	Refresh(ctx context.Context) (Snapshot, error)
	Snapshot() Snapshot
	Find(id int) (ViewModel, bool)
}

// Catalog owns the current event list and rebuilds it from the API on every Refresh.
type Catalog struct {
	client      eventapi.Client
	transformer *Transformer
	bus         *event_bus.EventBus
	clock       utils.Clock

	mu       sync.RWMutex
	snapshot Snapshot
}

func NewCatalog(client eventapi.Client, transformer *Transformer, bus *event_bus.EventBus, clock utils.Clock) *Catalog {
	return &Catalog{
		client:      client,
		transformer: transformer,
		bus:         bus,
		clock:       clock,
	}
}

// Refresh fetches events and reservations concurrently and waits for both. A failing call
// resolves to an empty list without aborting the other one. The only error returned is the
// cancellation of ctx, in which case the previous snapshot is kept.
func (c *Catalog) Refresh(ctx context.Context) (Snapshot, error) {
	var (
		events          []eventapi.EventRecord
		reservations    []eventapi.ReservationRecord
		eventsErr       error
		reservationsErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		events, eventsErr = c.client.ListEvents(ctx)
		return nil
	})
	g.Go(func() error {
		reservations, reservationsErr = c.client.ListReservations(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		log.Errorf("catalog refresh aborted: %v", err)
		return c.Snapshot(), fmt.Errorf("catalog refresh: %w", err)
	}
	if eventsErr != nil {
		log.Warnf("showing no events, listing failed: %v", eventsErr)
		events = nil
	}
	if reservationsErr != nil {
		log.Warnf("showing zero bookings, listing reservations failed: %v", reservationsErr)
		reservations = nil
	}

	snapshot := Snapshot{
		Events:          Aggregate(c.transformer.TransformAll(events), reservations),
		EventsErr:       eventsErr,
		ReservationsErr: reservationsErr,
		RefreshedAt:     c.clock.Now(),
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	log.Debugf("catalog refreshed: %d events, %d reservations", len(snapshot.Events), len(reservations))
	c.publishRefreshed(ctx, snapshot, len(reservations))
	return snapshot, nil
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Catalog) Find(id int) (ViewModel, bool) {
	return c.Snapshot().Find(id)
}

// Subscribe makes every accepted reservation or event trigger a full refresh. The bus is
// synchronous, so the refresh has finished when the publisher's Publish returns.
func (c *Catalog) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.ReservationCreatedType, func(e event_bus.EventT[event_bus.ReservationCreated]) error {
		_, err := c.Refresh(e.Context())
		return err
	})
	event_bus.SubscribeTyped(bus, event_bus.EventCreatedType, func(e event_bus.EventT[event_bus.EventCreated]) error {
		_, err := c.Refresh(e.Context())
		return err
	})
}

func (c *Catalog) publishRefreshed(ctx context.Context, snapshot Snapshot, reservations int) {
	if c.bus == nil {
		return
	}
	active := 0
	for _, e := range snapshot.Events {
		if e.Status {
			active++
		}
	}
	err := c.bus.Publish(event_bus.NewEvent(ctx, event_bus.CatalogRefreshedType, event_bus.CatalogRefreshed{
		Events:          len(snapshot.Events),
		ActiveEvents:    active,
		Reservations:    reservations,
		EventsErr:       snapshot.EventsErr,
		ReservationsErr: snapshot.ReservationsErr,
	}))
	if err != nil {
		log.Errorf("failed to publish catalog refresh: %v", err)
	}
}
