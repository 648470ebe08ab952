package images

import (
	"io/fs"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var eventImagePattern = regexp.MustCompile(`^event-(\d+)-img\.([a-z]+)$`)

// Handler serves event images and redirects a missing one to the next candidate,
// ending at the default image.
type Handler struct {
	files fs.FS
}

func NewHandler(files fs.FS) *Handler {
	return &Handler{files: files}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		http.NotFound(w, r)
		return
	}
	if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
		http.ServeFileFS(w, r, h.files, name)
		return
	}

	match := eventImagePattern.FindStringSubmatch(name)
	if match == nil {
		log.Debugf("image %s not found", name)
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	next, _ := Next(PathPrefix+name, id)
	log.Debugf("image %s not found, trying %s", name, next)
	http.Redirect(w, r, next, http.StatusFound)
}
