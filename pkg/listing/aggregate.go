package listing

import "github.com/campusevents/eventfront/pkg/eventapi"

// Aggregate sets Booked on every view model to the number of reservations referencing it.
// The input slice is not modified.
func Aggregate(events []ViewModel, reservations []eventapi.ReservationRecord) []ViewModel {
	result := make([]ViewModel, len(events))
	for i, e := range events {
		e.Booked = countBookings(e.Id, reservations)
		result[i] = e
	}
	return result
}

func countBookings(eventId int, reservations []eventapi.ReservationRecord) int {
	count := 0
	for _, r := range reservations {
		if r.EventId == eventId {
			count++
		}
	}
	return count
}
