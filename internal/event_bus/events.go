package event_bus

const (
	ReservationCreatedType EventType = "reservation.created"
	EventCreatedType       EventType = "event.created"
	CatalogRefreshedType   EventType = "catalog.refreshed"
	FeedbackSentType       EventType = "feedback.sent"
)

type ReservationCreated struct {
	ReservationId int
	EventId       int
	CheckIn       string
}

type EventCreated struct {
	Id   int
	Name string
}

type FeedbackSent struct {
	Email   string
	Subject string
}

// CatalogRefreshed is published after every refresh cycle, successful or partial.
type CatalogRefreshed struct {
	Events          int
	ActiveEvents    int
	Reservations    int
	EventsErr       error
	ReservationsErr error
}
