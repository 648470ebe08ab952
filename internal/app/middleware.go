package app

import (
	"crypto/rand"
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/campusevents/eventfront/internal/config"
	"github.com/campusevents/eventfront/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Request id, access log and request metrics
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get(requestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set(requestIdHeader, requestId)

			route := req.URL.Path
			if current := mux.CurrentRoute(req); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			elapsed := time.Since(start)

			log.WithFields(log.Fields{
				"requestId": requestId,
				"method":    req.Method,
				"path":      req.URL.Path,
				"status":    rec.status,
				"duration":  elapsed,
			}).Debug("request handled")
			deps.Metrics.Observe(req.Method, route, rec.status, elapsed)
		})
	})

	if !cfg.Csrf.Enabled {
		log.Warn("CSRF protection of forms is disabled")
		return
	}

	// Plain HTTP deployments skip the strict referer check meant for TLS
	if !cfg.Csrf.Secure {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, csrf.PlaintextHTTPRequest(req))
			})
		})
	}
	r.Use(csrf.Protect(
		csrfAuthKey(cfg.Csrf.AuthKey),
		csrf.Secure(cfg.Csrf.Secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			details := ""
			if reason := csrf.FailureReason(req); reason != nil {
				details = reason.Error()
			}
			log.Warnf("rejected form submission to %s: %s", req.URL.Path, details)
			rest.WriteError(w, http.StatusForbidden, "Invalid form token", details)
		})),
	))
}

// csrfAuthKey turns the configured key into the 32 bytes csrf needs. Without a key, tokens
// are signed with a random one and do not survive a restart.
func csrfAuthKey(configured string) []byte {
	if configured == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			log.Fatalf("failed to generate csrf key: %v", err)
		}
		log.Warn("csrf.authkey not set, using a random key")
		return key
	}
	sum := sha256.Sum256([]byte(configured))
	return sum[:]
}
