package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	genericReservationError = "Ошибка при создании бронирования"
	genericEventError       = "Ошибка при создании события"
	genericFeedbackError    = "Ошибка при отправке сообщения"
)

var ErrEventNotFound = errors.New("event not found")

type Client interface {
	ListEvents(ctx context.Context) ([]EventRecord, error)             // GET /events
	ListReservations(ctx context.Context) ([]ReservationRecord, error) // GET /reservations
	CreateReservation(ctx context.Context, in ReservationInput) (ReservationRecord, error)
	GetEvent(ctx context.Context, id int) (EventRecord, error)                       // GET /event/{id}
	AvailableEvents(ctx context.Context, from, to time.Time) ([]EventRecord, error) // GET /events/availabilitySearch
	CreateEvent(ctx context.Context, in EventInput) (int, error)                     // POST /event
	SendFeedback(ctx context.Context, in FeedbackInput) error                        // POST /feedback
}

type ClientImpl struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL (e.g. http://localhost:8080/api/v1).
// A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *ClientImpl) ListEvents(ctx context.Context) ([]EventRecord, error) {
	var events []EventRecord
	if err := c.getJSON(ctx, c.baseURL+"/events", &events); err != nil {
		log.Errorf("Failed to load events: %v", err)
		return nil, err
	}
	return events, nil
}

func (c *ClientImpl) ListReservations(ctx context.Context) ([]ReservationRecord, error) {
	var reservations []ReservationRecord
	if err := c.getJSON(ctx, c.baseURL+"/reservations", &reservations); err != nil {
		log.Errorf("Failed to load reservations: %v", err)
		return nil, err
	}
	return reservations, nil
}

func (c *ClientImpl) GetEvent(ctx context.Context, id int) (EventRecord, error) {
	var event EventRecord
	err := c.getJSON(ctx, c.baseURL+"/event/"+strconv.Itoa(id), &event)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return EventRecord{}, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
		}
		log.Errorf("Failed to load event %d: %v", id, err)
		return EventRecord{}, err
	}
	return event, nil
}

// AvailableEvents lists the events available between the two calendar dates.
func (c *ClientImpl) AvailableEvents(ctx context.Context, from, to time.Time) ([]EventRecord, error) {
	query := url.Values{}
	query.Set("dateFrom", from.Format(time.DateOnly))
	query.Set("dateTo", to.Format(time.DateOnly))

	var events []EventRecord
	if err := c.getJSON(ctx, c.baseURL+"/events/availabilitySearch?"+query.Encode(), &events); err != nil {
		log.Errorf("Failed to search available events: %v", err)
		return nil, err
	}
	return events, nil
}

// CreateReservation posts the reservation. A rejected request yields *APIError carrying the
// server's message, which is meant to be shown to the user as is.
func (c *ClientImpl) CreateReservation(ctx context.Context, in ReservationInput) (ReservationRecord, error) {
	created := ReservationRecord{EventId: in.EventId, CheckIn: in.CheckIn, Status: in.Status}
	if err := c.postJSON(ctx, c.baseURL+"/reservation", in, &created, genericReservationError); err != nil {
		log.Errorf("Failed to create reservation for event %d: %v", in.EventId, err)
		return ReservationRecord{}, err
	}
	return created, nil
}

func (c *ClientImpl) CreateEvent(ctx context.Context, in EventInput) (int, error) {
	var created struct {
		Id int `json:"id"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/event", in, &created, genericEventError); err != nil {
		log.Errorf("Failed to create event %q: %v", in.Name, err)
		return 0, err
	}
	return created.Id, nil
}

// SendFeedback posts a contact message. Like the other writes, a rejection is an *APIError.
func (c *ClientImpl) SendFeedback(ctx context.Context, in FeedbackInput) error {
	var ack struct {
		Success bool `json:"success"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/feedback", in, &ack, genericFeedbackError); err != nil {
		log.Errorf("Failed to send feedback from %q: %v", in.Email, err)
		return err
	}
	return nil
}

func (c *ClientImpl) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("booking API returned non-OK status: %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *ClientImpl) postJSON(ctx context.Context, url string, in any, out any, genericMessage string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body, genericMessage)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts `message` from a JSON error body.
func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Message == "" {
		return fallback
	}
	return payload.Message
}
