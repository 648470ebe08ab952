package page

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/campusevents/eventfront/pkg/eventapi"
	"github.com/campusevents/eventfront/pkg/listing"
	"github.com/gorilla/csrf"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets
var assetFiles embed.FS

// Assets returns the static files served under /static/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

var categories = []listing.Category{listing.CategoryWorkshop, listing.CategoryFestival, listing.CategoryConference}

var eventTypes = []string{string(eventapi.Concert), string(eventapi.Workshop), string(eventapi.Conference)}

// ContactDraft refills the contact form after a rejected submission.
type ContactDraft struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// State is everything a request decided about the page: the filter, the loaded catalog,
// the modals and the messages to show.
type State struct {
	Query      string
	Category   listing.Category
	From       string
	To         string
	Snapshot   listing.Snapshot
	RefreshErr error
	Modals     Modals
	Contact    ContactDraft
	Alert      string
	Success    string
	Notice     string
}

type categoryOption struct {
	Value    listing.Category
	Selected bool
}

type view struct {
	State
	Lang            string
	Grid            Grid
	InitFailed      bool
	Notices         []string
	Labels          listing.Labels
	Categories      []categoryOption
	EventTypes      []string
	CSRFField       template.HTML
	SuccessBannerMs int64
	BookingModalID  string
	CreateModalID   string
}

type Presenter struct {
	tmpl          *template.Template
	renderer      *Renderer
	locale        listing.Locale
	successBanner time.Duration
}

func NewPresenter(renderer *Renderer, locale listing.Locale, successBanner time.Duration) *Presenter {
	return &Presenter{
		tmpl:          template.Must(template.ParseFS(templateFiles, "templates/index.html")),
		renderer:      renderer,
		locale:        locale,
		successBanner: successBanner,
	}
}

// Present renders the page for state. The last search is re-applied to the snapshot.
func (p *Presenter) Present(w http.ResponseWriter, r *http.Request, state State) {
	v := view{
		State:           state,
		Lang:            p.locale.Tag.String(),
		Labels:          p.locale.Labels,
		InitFailed:      state.RefreshErr != nil,
		EventTypes:      eventTypes,
		CSRFField:       csrf.TemplateField(r),
		SuccessBannerMs: p.successBanner.Milliseconds(),
		BookingModalID:  BookingModalID,
		CreateModalID:   CreateModalID,
	}
	if !v.InitFailed {
		v.Grid = p.renderer.Render(listing.Search(state.Snapshot.Events, state.Query, state.Category))
	}
	for _, c := range categories {
		v.Categories = append(v.Categories, categoryOption{Value: c, Selected: c == state.Category})
	}
	if state.Snapshot.EventsErr != nil {
		v.Notices = append(v.Notices, p.locale.Labels.EventsUnavailable)
	}
	if state.Snapshot.ReservationsErr != nil {
		v.Notices = append(v.Notices, p.locale.Labels.ReservationsUnavailable)
	}
	if state.Notice != "" {
		v.Notices = append(v.Notices, state.Notice)
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, v); err != nil {
		log.Errorf("failed to render page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("failed to write page: %v", err)
	}
}

func (p *Presenter) Labels() listing.Labels {
	return p.locale.Labels
}
