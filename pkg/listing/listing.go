package listing

type Category string

const (
	CategoryWorkshop   Category = "workshop"
	CategoryFestival   Category = "festival"
	CategoryConference Category = "conference"
)

// Capacity and Location stand in for fields the booking API does not expose yet.
const (
	Capacity = 100
	Location = "SDU Campus"
)

// ViewModel is the display-ready form of an event. Booked is recomputed on every refresh.
type ViewModel struct {
	Id            int      `json:"id"`
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	Image         string   `json:"image"`
	Booked        int      `json:"booked"`
	Total         int      `json:"total"`
	Status        bool     `json:"status"`
	AvailableFrom string   `json:"availableFrom"`
	AvailableTo   string   `json:"availableTo"`
}

func (v ViewModel) IsFull() bool {
	return v.Booked >= v.Total
}
