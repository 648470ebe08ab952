package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campusevents/eventfront/internal/config"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T, csrfEnabled bool) (*Application, *eventapi.ClientStub) {
	imgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "event-default.jpg"), []byte("default"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "event-5-img.png"), []byte("png"), 0o644))

	cfg := config.Defaults()
	cfg.Images.Dir = imgDir
	cfg.Csrf.Enabled = csrfEnabled

	client := eventapi.NewClientStub()
	client.SetEvents(eventapi.EventRecord{Id: 5, Name: "Go workshop", Type: eventapi.Workshop, AvailableFrom: "2024-03-10", Status: true})
	return newApplication(cfg, client), client
}

func serve(a *Application, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestApplication_Routes(t *testing.T) {
	t.Run("should render index with resolved image and request id", func(t *testing.T) {
		a, _ := setupApp(t, true)

		w := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(requestIdHeader))
		assert.Contains(t, w.Body.String(), `src="/img/event-5-img.png"`)
		assert.Contains(t, w.Body.String(), `name="gorilla.csrf.Token"`)
	})

	t.Run("should keep incoming request id", func(t *testing.T) {
		a, _ := setupApp(t, false)
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set(requestIdHeader, "abc")

		w := serve(a, req)

		assert.Equal(t, "abc", w.Header().Get(requestIdHeader))
	})

	t.Run("should redirect missing image to next extension", func(t *testing.T) {
		a, _ := setupApp(t, false)

		w := serve(a, httptest.NewRequest(http.MethodGet, "/img/event-5-img.jpg", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/img/event-5-img.png", w.Header().Get("Location"))
	})

	t.Run("should serve static assets", func(t *testing.T) {
		a, _ := setupApp(t, false)

		w := serve(a, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should reject form without csrf token", func(t *testing.T) {
		a, client := setupApp(t, true)

		w := serve(a, postForm("/booking", url.Values{"eventId": {"5"}, "bookingId": {"1"}, "bookingName": {"A"}, "bookingSurname": {"B"}}))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, client.CreatedReservations)
	})

	t.Run("should book and count request metrics", func(t *testing.T) {
		// given
		a, client := setupApp(t, false)

		// when
		w := serve(a, postForm("/booking", url.Values{"eventId": {"5"}, "bookingId": {"1"}, "bookingName": {"A"}, "bookingSurname": {"B"}}))
		metrics := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, client.CreatedReservations, 1)
		assert.Contains(t, metrics.Body.String(), "eventfront_reservations_created_total 1")
		assert.Contains(t, metrics.Body.String(), `eventfront_http_requests_total{method="POST",route="/booking",status="200"} 1`)
	})

	t.Run("should send contact message to the API", func(t *testing.T) {
		// given
		a, client := setupApp(t, false)

		// when
		w := serve(a, postForm("/contact", url.Values{
			"name": {"Aliya"}, "email": {"a@sdu.edu.kz"}, "subject": {"Schedule"}, "message": {"Please add more evening workshops"},
		}))
		metrics := serve(a, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, client.SentFeedback, 1)
		assert.Equal(t, "Schedule", client.SentFeedback[0].Subject)
		assert.Contains(t, metrics.Body.String(), "eventfront_feedback_sent_total 1")
	})
}
