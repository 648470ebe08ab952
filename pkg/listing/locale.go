package listing

import (
	"golang.org/x/text/language"
)

// Labels are the user-facing texts of the front end.
type Labels struct {
	Book                    string
	NoSeats                 string
	Seats                   string
	NothingFound            string
	Free                    string
	InitFailed              string
	EventsUnavailable       string
	ReservationsUnavailable string
	AllSeatsTaken           string
	FillAllFields           string
	BookingFailed           string
	BookingSucceeded        string
	EventCreated            string
	EventFormInvalid        string
	EventCreateFailed       string
	DateFilterUnavailable   string
	ContactSent             string
	ContactInvalid          string
	ContactFailed           string
}

type Locale struct {
	Tag    language.Tag
	Months [12]string
	Labels Labels
}

var russian = Locale{
	Tag: language.Russian,
	Months: [12]string{"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря"},
	Labels: Labels{
		Book:                    "Бронировать",
		NoSeats:                 "Мест нет",
		Seats:                   "Места:",
		NothingFound:            "Ничего не найдено",
		Free:                    "Бесплатно",
		InitFailed:              "Ошибка при загрузке событий. Пожалуйста, обновите страницу.",
		EventsUnavailable:       "События временно недоступны.",
		ReservationsUnavailable: "Бронирования временно недоступны, количество мест может быть неточным.",
		AllSeatsTaken:           "К сожалению, все места заняты!",
		FillAllFields:           "Пожалуйста, заполните все поля!",
		BookingFailed:           "Ошибка при создании бронирования. Пожалуйста, попробуйте еще раз.",
		BookingSucceeded:        "Бронирование успешно создано!",
		EventCreated:            "Событие создано!",
		EventFormInvalid:        "Проверьте поля события: название 3-40 символов, тип, описание и даты в формате ГГГГ-ММ-ДД.",
		EventCreateFailed:       "Ошибка при создании события. Пожалуйста, попробуйте еще раз.",
		DateFilterUnavailable:   "Поиск по датам временно недоступен, показаны все события.",
		ContactSent:             "Ваше сообщение отправлено. Мы свяжемся с вами!",
		ContactInvalid:          "Проверьте поля: имя 2-100 символов, корректный email, тема 3-200 символов, сообщение 10-2000 символов.",
		ContactFailed:           "Ошибка при отправке сообщения. Пожалуйста, попробуйте еще раз.",
	},
}

var english = Locale{
	Tag: language.English,
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Labels: Labels{
		Book:                    "Book",
		NoSeats:                 "No seats",
		Seats:                   "Seats:",
		NothingFound:            "Nothing found",
		Free:                    "Free",
		InitFailed:              "Failed to load events. Please reload the page.",
		EventsUnavailable:       "Events are temporarily unavailable.",
		ReservationsUnavailable: "Reservations are unavailable, seat counts may be inaccurate.",
		AllSeatsTaken:           "Sorry, all seats are taken!",
		FillAllFields:           "Please fill in all fields!",
		BookingFailed:           "Failed to create the booking. Please try again.",
		BookingSucceeded:        "Booking created!",
		EventCreated:            "Event created!",
		EventFormInvalid:        "Check the event fields: name of 3-40 characters, type, description and YYYY-MM-DD dates.",
		EventCreateFailed:       "Failed to create the event. Please try again.",
		DateFilterUnavailable:   "Date search is unavailable, showing all events.",
		ContactSent:             "Your message has been sent. We will contact you!",
		ContactInvalid:          "Check the fields: name of 2-100 characters, a valid email, subject of 3-200 and message of 10-2000 characters.",
		ContactFailed:           "Failed to send the message. Please try again.",
	},
}

var supported = []Locale{russian, english}

var matcher = language.NewMatcher([]language.Tag{russian.Tag, english.Tag})

// LocaleFor picks the supported locale closest to the given BCP 47 tag. Russian is the fallback.
func LocaleFor(tag string) Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		return russian
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return russian
	}
	return supported[index]
}
