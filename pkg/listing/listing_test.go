package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/internal/utils"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	events := []ViewModel{{Id: 1, Total: Capacity}, {Id: 2, Total: Capacity}, {Id: 3, Total: Capacity}}
	reservations := []eventapi.ReservationRecord{
		{EventId: 1, CheckIn: "a"},
		{EventId: 1, CheckIn: "b"},
		{EventId: 3, CheckIn: "c"},
		{EventId: 99, CheckIn: "d"},
	}

	t.Run("should count reservations per event", func(t *testing.T) {
		result := Aggregate(events, reservations)

		assert.Equal(t, 2, result[0].Booked)
		assert.Equal(t, 0, result[1].Booked)
		assert.Equal(t, 1, result[2].Booked)
		assert.Equal(t, 0, events[0].Booked, "input must stay untouched")
	})

	t.Run("should increase booked by one per added reservation", func(t *testing.T) {
		before := Aggregate(events, reservations)
		after := Aggregate(events, append(reservations, eventapi.ReservationRecord{EventId: 2, CheckIn: "e"}))

		assert.Equal(t, before[1].Booked+1, after[1].Booked)
		assert.Equal(t, before[0].Booked, after[0].Booked)
	})

	t.Run("should recompute from scratch", func(t *testing.T) {
		stale := []ViewModel{{Id: 1, Booked: 50, Total: Capacity}}

		result := Aggregate(stale, nil)

		assert.Equal(t, 0, result[0].Booked)
	})
}

func TestSearch(t *testing.T) {
	events := []ViewModel{
		{Id: 1, Title: "Go Workshop", Category: CategoryWorkshop, Status: true},
		{Id: 2, Title: "Spring Festival", Category: CategoryFestival, Status: true},
		{Id: 3, Title: "Closed workshop", Category: CategoryWorkshop, Status: false},
		{Id: 4, Title: "Конференция ИИ", Category: CategoryConference, Status: true},
	}

	ids := func(vms []ViewModel) []int {
		result := make([]int, 0, len(vms))
		for _, vm := range vms {
			result = append(result, vm.Id)
		}
		return result
	}

	t.Run("should return all active events for empty query", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 4}, ids(Search(events, "", "")))
	})

	t.Run("should match title case-insensitively", func(t *testing.T) {
		assert.Equal(t, []int{1}, ids(Search(events, "WORKSHOP", "")))
		assert.Equal(t, []int{4}, ids(Search(events, "конференция", "")))
	})

	t.Run("should filter by category", func(t *testing.T) {
		assert.Equal(t, []int{2}, ids(Search(events, "", CategoryFestival)))
		assert.Empty(t, Search(events, "go", CategoryFestival))
	})

	t.Run("should never return inactive events", func(t *testing.T) {
		assert.Empty(t, Search(events, "closed", CategoryWorkshop))
	})
}

func setupCatalogTest(t *testing.T) (*Catalog, *eventapi.ClientStub, *event_bus.EventBus) {
	client := eventapi.NewClientStub()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()
	catalog := NewCatalog(client, NewTransformer(LocaleFor("ru"), clock), bus, clock)
	t.Cleanup(client.Reset)
	return catalog, client, bus
}

func TestWithIds(t *testing.T) {
	t.Run("should keep listed ids in original order", func(t *testing.T) {
		events := []ViewModel{{Id: 1}, {Id: 2}, {Id: 3}}

		result := WithIds(events, []int{3, 1, 42})

		assert.Equal(t, []ViewModel{{Id: 1}, {Id: 3}}, result)
		assert.Len(t, events, 3)
	})

	t.Run("should return empty list without ids", func(t *testing.T) {
		assert.Empty(t, WithIds([]ViewModel{{Id: 1}}, nil))
	})
}

func TestCatalog_Refresh(t *testing.T) {
	t.Run("should join events with reservation counts", func(t *testing.T) {
		// given
		catalog, client, _ := setupCatalogTest(t)
		client.SetEvents(
			eventapi.EventRecord{Id: 5, Name: "Workshop", Type: eventapi.Workshop, AvailableFrom: "2024-03-10", Status: true},
			eventapi.EventRecord{Id: 6, Name: "Concert", Type: eventapi.Concert, Status: false},
		)
		client.SetReservations(
			eventapi.ReservationRecord{EventId: 5, CheckIn: "1"},
			eventapi.ReservationRecord{EventId: 5, CheckIn: "2"},
		)

		// when
		snapshot, err := catalog.Refresh(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, snapshot.Events, 2)
		assert.Equal(t, 2, snapshot.Events[0].Booked)
		assert.Equal(t, "10 марта", snapshot.Events[0].Date)
		assert.NoError(t, snapshot.EventsErr)
		assert.NoError(t, snapshot.ReservationsErr)
		found, ok := catalog.Find(5)
		require.True(t, ok)
		assert.Equal(t, 2, found.Booked)
	})

	t.Run("should replace the list wholesale", func(t *testing.T) {
		// given
		catalog, client, _ := setupCatalogTest(t)
		client.SetEvents(eventapi.EventRecord{Id: 1, Status: true}, eventapi.EventRecord{Id: 2, Status: true})
		_, err := catalog.Refresh(context.Background())
		require.NoError(t, err)
		client.SetEvents(eventapi.EventRecord{Id: 2, Status: true})

		// when
		_, err = catalog.Refresh(context.Background())

		// then
		require.NoError(t, err)
		_, ok := catalog.Find(1)
		assert.False(t, ok)
		assert.Len(t, catalog.Snapshot().Events, 1)
	})

	t.Run("should keep events when reservations fail", func(t *testing.T) {
		// given
		catalog, client, _ := setupCatalogTest(t)
		client.SetEvents(eventapi.EventRecord{Id: 1, Status: true})
		client.FailListReservations(errors.New("connection refused"))

		// when
		snapshot, err := catalog.Refresh(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, snapshot.Events, 1)
		assert.Equal(t, 0, snapshot.Events[0].Booked)
		assert.Error(t, snapshot.ReservationsErr)
		assert.NoError(t, snapshot.EventsErr)
	})

	t.Run("should resolve failed events listing to empty list", func(t *testing.T) {
		// given
		catalog, client, _ := setupCatalogTest(t)
		client.FailListEvents(errors.New("503"))
		client.SetReservations(eventapi.ReservationRecord{EventId: 1})

		// when
		snapshot, err := catalog.Refresh(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, snapshot.Events)
		assert.Error(t, snapshot.EventsErr)
	})

	t.Run("should fail only when context is cancelled", func(t *testing.T) {
		// given
		catalog, client, _ := setupCatalogTest(t)
		client.SetEvents(eventapi.EventRecord{Id: 1, Status: true})
		_, err := catalog.Refresh(context.Background())
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		snapshot, err := catalog.Refresh(ctx)

		// then
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, snapshot.Events, 1, "previous snapshot is kept")
	})

	t.Run("should publish refresh summary", func(t *testing.T) {
		// given
		catalog, client, bus := setupCatalogTest(t)
		client.SetEvents(eventapi.EventRecord{Id: 1, Status: true}, eventapi.EventRecord{Id: 2, Status: false})
		var summary event_bus.CatalogRefreshed
		event_bus.SubscribeTyped(bus, event_bus.CatalogRefreshedType, func(e event_bus.EventT[event_bus.CatalogRefreshed]) error {
			summary = e.Data
			return nil
		})

		// when
		_, err := catalog.Refresh(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Events)
		assert.Equal(t, 1, summary.ActiveEvents)
	})
}

func TestCatalog_Subscribe(t *testing.T) {
	t.Run("should refresh when a reservation is created", func(t *testing.T) {
		// given
		catalog, client, bus := setupCatalogTest(t)
		catalog.Subscribe(bus)
		client.SetEvents(eventapi.EventRecord{Id: 1, Status: true})
		_, err := catalog.Refresh(context.Background())
		require.NoError(t, err)
		_, err = client.CreateReservation(context.Background(), eventapi.ReservationInput{EventId: 1, CheckIn: "x", Status: true})
		require.NoError(t, err)

		// when
		err = bus.Publish(event_bus.NewEvent(context.Background(), event_bus.ReservationCreatedType, event_bus.ReservationCreated{EventId: 1}))

		// then
		require.NoError(t, err)
		found, ok := catalog.Find(1)
		require.True(t, ok)
		assert.Equal(t, 1, found.Booked)
	})
}
