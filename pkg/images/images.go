package images

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

const (
	PathPrefix     = "/img/"
	DefaultPath    = PathPrefix + "event-default.jpg"
	FirstExtension = "jpg"
)

// Extensions is the order in which event image files are tried.
var Extensions = []string{"jpg", "png", "jpeg"}

func EventPath(id int, ext string) string {
	return fmt.Sprintf("%sevent-%d-img.%s", PathPrefix, id, ext)
}

// Next returns the source to try after src failed to load. Once the extensions are exhausted
// it returns DefaultPath with done set; a failing DefaultPath also yields DefaultPath and done,
// so callers stop there.
func Next(src string, id int) (next string, done bool) {
	src, _, _ = strings.Cut(src, "?")
	if strings.HasSuffix(src, DefaultPath) {
		return DefaultPath, true
	}
	ext := src[strings.LastIndex(src, ".")+1:]
	idx := slices.Index(Extensions, ext)
	if idx >= 0 && idx < len(Extensions)-1 {
		return EventPath(id, Extensions[idx+1]), false
	}
	return DefaultPath, true
}

// Resolver picks the first existing image of an event from a file tree laid out like PathPrefix.
type Resolver struct {
	files fs.FS
}

func NewResolver(files fs.FS) *Resolver {
	return &Resolver{files: files}
}

func (r *Resolver) Resolve(id int) string {
	src := EventPath(id, FirstExtension)
	for {
		if r.exists(src) {
			return src
		}
		next, done := Next(src, id)
		if done {
			return next
		}
		src = next
	}
}

func (r *Resolver) exists(src string) bool {
	_, err := fs.Stat(r.files, strings.TrimPrefix(src, PathPrefix))
	return err == nil
}
