package page

import "github.com/campusevents/eventfront/pkg/listing"

// Element ids of the two modals. A click whose target is the modal element itself,
// not its content, is a backdrop click.
const (
	BookingModalID = "bookingModal"
	CreateModalID  = "createEventModal"
)

type BookingModal struct {
	Open      bool
	EventId   int
	Title     string
	StudentId string
	Name      string
	Surname   string
}

type CreateModal struct {
	Open          bool
	Name          string
	Type          string
	Description   string
	AvailableFrom string
	AvailableTo   string
}

// Modals holds the booking and the creation modal. They share no state.
type Modals struct {
	Booking BookingModal
	Create  CreateModal
}

// OpenBooking targets the event and starts from an empty form.
func (m *Modals) OpenBooking(event listing.ViewModel) {
	m.Booking = BookingModal{Open: true, EventId: event.Id, Title: event.Title}
}

func (m *Modals) CloseBooking() {
	m.Booking = BookingModal{}
}

func (m *Modals) OpenCreate() {
	m.Create.Open = true
}

func (m *Modals) CloseCreate() {
	m.Create = CreateModal{}
}

// Backdrop closes the modal whose element id equals targetID.
func (m *Modals) Backdrop(targetID string) {
	switch targetID {
	case BookingModalID:
		m.CloseBooking()
	case CreateModalID:
		m.CloseCreate()
	}
}
