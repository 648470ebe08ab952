package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/campusevents/eventfront/internal/utils"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/campusevents/eventfront/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Controller, *Handler, *eventapi.ClientStub, *event_bus.EventBus) {
	client := eventapi.NewClientStub()
	client.SetEvents(eventapi.EventRecord{Id: 5, Name: "Go workshop", Type: eventapi.Workshop, AvailableFrom: "2024-03-10", Status: true})
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	locale := listing.LocaleFor("ru")
	bus := event_bus.NewEventBus()
	catalog := listing.NewCatalog(client, listing.NewTransformer(locale, clock), bus, clock)

	controller := NewController(client, bus, locale.Labels)
	presenter := page.NewPresenter(page.NewRenderer(locale.Labels, nil), locale, 3*time.Second)
	return controller, NewHandler(controller, catalog, presenter), client, bus
}

var validForm = Form{
	Name:    "Aliya",
	Email:   "a@sdu.edu.kz",
	Subject: "Schedule",
	Message: "Please add more evening workshops",
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("should send trimmed feedback and publish it", func(t *testing.T) {
		// given
		controller, _, client, bus := setup(t)
		var published []event_bus.FeedbackSent
		event_bus.SubscribeTyped(bus, event_bus.FeedbackSentType, func(e event_bus.EventT[event_bus.FeedbackSent]) error {
			published = append(published, e.Data)
			return nil
		})
		form := validForm
		form.Email = "  a@sdu.edu.kz "

		// when
		result := controller.Submit(ctx, form)

		// then
		assert.Equal(t, OutcomeSent, result.Outcome)
		assert.Empty(t, result.Alert)
		assert.Equal(t, []eventapi.FeedbackInput{{
			Name:    "Aliya",
			Email:   "a@sdu.edu.kz",
			Subject: "Schedule",
			Message: "Please add more evening workshops",
		}}, client.SentFeedback)
		assert.Equal(t, []event_bus.FeedbackSent{{Email: "a@sdu.edu.kz", Subject: "Schedule"}}, published)
	})

	t.Run("should reject forms outside the limits", func(t *testing.T) {
		controller, _, client, _ := setup(t)
		cases := map[string]func(f *Form){
			"short name":      func(f *Form) { f.Name = "A" },
			"long name":       func(f *Form) { f.Name = strings.Repeat("a", 101) },
			"invalid email":   func(f *Form) { f.Email = "not-an-email" },
			"short subject":   func(f *Form) { f.Subject = "Hi" },
			"long subject":    func(f *Form) { f.Subject = strings.Repeat("s", 201) },
			"short message":   func(f *Form) { f.Message = "Too short" },
			"long message":    func(f *Form) { f.Message = strings.Repeat("m", 2001) },
			"blank message":   func(f *Form) { f.Message = "           " },
			"missing subject": func(f *Form) { f.Subject = "" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				form := validForm
				mutate(&form)

				result := controller.Submit(ctx, form)

				assert.Equal(t, OutcomeInvalid, result.Outcome)
				assert.Contains(t, result.Alert, "Проверьте поля")
			})
		}
		assert.Empty(t, client.SentFeedback)
	})

	t.Run("should accept the limits themselves", func(t *testing.T) {
		controller, _, _, _ := setup(t)

		result := controller.Submit(ctx, Form{
			Name:    "Al",
			Email:   "a@sdu.edu.kz",
			Subject: "Hey",
			Message: strings.Repeat("m", 2000),
		})

		assert.Equal(t, OutcomeSent, result.Outcome)
	})

	t.Run("should show server message on failure", func(t *testing.T) {
		controller, _, client, _ := setup(t)
		client.FailSendFeedback(&eventapi.APIError{StatusCode: http.StatusBadRequest, Message: "Некорректный формат email"})

		result := controller.Submit(ctx, validForm)

		assert.Equal(t, OutcomeFailed, result.Outcome)
		assert.Equal(t, "Некорректный формат email", result.Alert)
	})

	t.Run("should show generic message on transport failure", func(t *testing.T) {
		controller, _, client, _ := setup(t)
		client.FailSendFeedback(errors.New("connection refused"))

		result := controller.Submit(ctx, validForm)

		assert.Equal(t, OutcomeFailed, result.Outcome)
		assert.Equal(t, "Ошибка при отправке сообщения. Пожалуйста, попробуйте еще раз.", result.Alert)
	})
}

func TestHandler_Submit(t *testing.T) {
	post := func(t *testing.T, h *Handler, values url.Values) *goquery.Document {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.Submit(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		doc, err := goquery.NewDocumentFromReader(w.Body)
		require.NoError(t, err)
		return doc
	}
	valid := url.Values{
		"name": {"Aliya"}, "email": {"a@sdu.edu.kz"}, "subject": {"Schedule"}, "message": {"Please add more evening workshops"},
	}

	t.Run("should acknowledge sent message with empty form", func(t *testing.T) {
		// given
		_, handler, client, _ := setup(t)

		// when
		doc := post(t, handler, valid)

		// then
		assert.Contains(t, doc.Find(".notice").Text(), "Ваше сообщение отправлено")
		assert.Equal(t, 0, doc.Find("#alertMessage").Length())
		assert.Empty(t, doc.Find("#contactName").AttrOr("value", "x"))
		assert.Len(t, client.SentFeedback, 1)
		assert.Equal(t, 1, doc.Find(".event-card").Length())
	})

	t.Run("should keep entered values and show server message on failure", func(t *testing.T) {
		// given
		_, handler, client, _ := setup(t)
		client.FailSendFeedback(&eventapi.APIError{StatusCode: http.StatusBadRequest, Message: "Тема должна быть от 3 до 200 символов"})

		// when
		doc := post(t, handler, valid)

		// then
		assert.Equal(t, "Тема должна быть от 3 до 200 символов", doc.Find("#alertMessage").Text())
		assert.Equal(t, "Aliya", doc.Find("#contactName").AttrOr("value", ""))
		assert.Equal(t, "a@sdu.edu.kz", doc.Find("#contactEmail").AttrOr("value", ""))
		assert.Equal(t, "Schedule", doc.Find("#contactSubject").AttrOr("value", ""))
		assert.Equal(t, "Please add more evening workshops", doc.Find("#contactMessage").Text())
		assert.NotContains(t, doc.Find(".notice").Text(), "Ваше сообщение отправлено")
	})

	t.Run("should not send invalid form", func(t *testing.T) {
		_, handler, client, _ := setup(t)

		doc := post(t, handler, url.Values{"name": {"Aliya"}, "email": {"bad"}})

		assert.Contains(t, doc.Find("#alertMessage").Text(), "Проверьте поля")
		assert.Equal(t, "bad", doc.Find("#contactEmail").AttrOr("value", ""))
		assert.Empty(t, client.SentFeedback)
	})
}
