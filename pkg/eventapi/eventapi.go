package eventapi

import "fmt"

type EventType string

const (
	Workshop   EventType = "WORKSHOP"
	Concert    EventType = "CONCERT"
	Conference EventType = "CONFERENCE"
)

// EventRecord is an event as the booking API returns it. AvailableFrom and AvailableTo
// are date-only "YYYY-MM-DD" strings and may be empty.
type EventRecord struct {
	Id            int       `json:"id"`
	Name          string    `json:"name"`
	Type          EventType `json:"type"`
	Description   string    `json:"description"`
	AvailableFrom string    `json:"availableFrom"`
	AvailableTo   string    `json:"availableTo"`
	Status        bool      `json:"status"`
}

// ReservationRecord references an event by id. CheckIn holds the student id of the person
// who booked and is used by the API as the uniqueness key.
type ReservationRecord struct {
	Id      int    `json:"id,omitempty"`
	EventId int    `json:"eventId"`
	CheckIn string `json:"checkIn"`
	Status  bool   `json:"status"`
}

type ReservationInput struct {
	EventId int    `json:"eventId"`
	CheckIn string `json:"checkIn"`
	Status  bool   `json:"status"`
}

type EventInput struct {
	Name          string    `json:"name"`
	Type          EventType `json:"type"`
	Description   string    `json:"description"`
	AvailableFrom string    `json:"availableFrom"`
	AvailableTo   string    `json:"availableTo"`
	Status        bool      `json:"status"`
}

// FeedbackInput is a contact form message. The API validates the same limits as the form.
type FeedbackInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer of a write call. Message is the server's `message` field
// when present, otherwise a generic text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) String() string {
	return fmt.Sprintf("booking API returned %d: %s", e.StatusCode, e.Message)
}
