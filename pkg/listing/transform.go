package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campusevents/eventfront/internal/utils"
	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/images"
)

// Events carry only a start date, every card shows this time of day.
const (
	displayHour   = 10
	displayMinute = 0
)

type Transformer struct {
	locale Locale
	clock  utils.Clock
}

func NewTransformer(locale Locale, clock utils.Clock) *Transformer {
	return &Transformer{locale: locale, clock: clock}
}

func (t *Transformer) Transform(event eventapi.EventRecord) ViewModel {
	start := t.startOf(event.AvailableFrom)
	return ViewModel{
		Id:            event.Id,
		Title:         event.Name,
		Category:      CategoryOf(event.Type),
		Date:          t.FormatDate(start),
		Time:          FormatTime(start),
		Location:      Location,
		Description:   event.Description,
		Price:         t.locale.Labels.Free,
		Image:         images.EventPath(event.Id, images.FirstExtension),
		Booked:        0,
		Total:         Capacity,
		Status:        event.Status,
		AvailableFrom: event.AvailableFrom,
		AvailableTo:   event.AvailableTo,
	}
}

func (t *Transformer) TransformAll(events []eventapi.EventRecord) []ViewModel {
	result := make([]ViewModel, 0, len(events))
	for _, e := range events {
		result = append(result, t.Transform(e))
	}
	return result
}

// startOf reads a "YYYY-MM-DD" date as calendar components in local time, so the day never
// shifts with the zone offset. Absent or malformed dates fall back to today.
func (t *Transformer) startOf(availableFrom string) time.Time {
	now := t.clock.Now()
	if day, ok := parseCalendarDate(availableFrom, now.Location()); ok {
		return utils.DayAt(day, displayHour, displayMinute)
	}
	return utils.DayAt(now, displayHour, displayMinute)
}

// parseCalendarDate accepts year-month-day with or without zero padding ("2024-3-10").
// Days that do not exist in the month are rejected rather than rolled over.
func parseCalendarDate(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		ymd[i] = n
	}
	year, month, day := ymd[0], ymd[1], ymd[2]
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// CategoryOf maps an API event type to its display category. Unknown types are conferences.
func CategoryOf(eventType eventapi.EventType) Category {
	switch eventType {
	case eventapi.Workshop:
		return CategoryWorkshop
	case eventapi.Concert:
		return CategoryFestival
	default:
		return CategoryConference
	}
}

func (t *Transformer) FormatDate(d time.Time) string {
	return fmt.Sprintf("%d %s", d.Day(), t.locale.Months[d.Month()-1])
}

func FormatTime(d time.Time) string {
	return fmt.Sprintf("%02d:%02d", d.Hour(), d.Minute())
}
