package page

import (
	"strconv"

	"github.com/campusevents/eventfront/pkg/listing"
)

// Grid is the rendered events container: either cards or a placeholder text.
type Grid struct {
	Cards       []Card
	Placeholder string
}

type Card struct {
	EventId     int
	Title       string
	Category    listing.Category
	Image       string
	Date        string
	Time        string
	Location    string
	Description string
	Seats       string
	SeatsFull   bool
	Price       string
	Button      Button
}

type Button struct {
	Label    string
	Disabled bool
}

type ImageResolver interface {
	Resolve(id int) string
}

type Renderer struct {
	labels listing.Labels
	images ImageResolver
}

// NewRenderer creates a renderer. images may be nil, cards then keep the view model's image.
func NewRenderer(labels listing.Labels, images ImageResolver) *Renderer {
	return &Renderer{labels: labels, images: images}
}

// Render turns view models into cards. Inactive events are always dropped.
func (r *Renderer) Render(events []listing.ViewModel) Grid {
	cards := make([]Card, 0, len(events))
	for _, e := range events {
		if !e.Status {
			continue
		}
		cards = append(cards, r.card(e))
	}
	if len(cards) == 0 {
		return Grid{Placeholder: r.labels.NothingFound}
	}
	return Grid{Cards: cards}
}

func (r *Renderer) card(e listing.ViewModel) Card {
	full := e.IsFull()
	button := Button{Label: r.labels.Book}
	if full {
		button = Button{Label: r.labels.NoSeats, Disabled: true}
	}
	image := e.Image
	if r.images != nil {
		image = r.images.Resolve(e.Id)
	}
	return Card{
		EventId:     e.Id,
		Title:       e.Title,
		Category:    e.Category,
		Image:       image,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		Seats:       strconv.Itoa(e.Booked) + "/" + strconv.Itoa(e.Total),
		SeatsFull:   full,
		Price:       e.Price,
		Button:      button,
	}
}
