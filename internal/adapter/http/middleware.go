package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
	"github.com/couchcryptid/sikkim-flood-portal/internal/session"
)

const sessionCookieName = "flood_session"

type ctxKey struct{}

// sessionID returns the session resolved by withSession.
func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withSession resolves the visitor's session from the cookie, starting a new
// one when the cookie is missing or names an expired session.
func (h *handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var existing string
		if c, err := r.Cookie(sessionCookieName); err == nil {
			existing = c.Value
		}
		id, _, created := h.svc.Session(existing)
		if created {
			setSessionCookie(w, r, id)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// inSession runs fn against the request's session. If that session was
// evicted or expired after withSession resolved it, a fresh session is
// issued and fn runs once more against it. It returns the id fn last ran with.
func (h *handler) inSession(w http.ResponseWriter, r *http.Request, fn func(id string) error) (string, error) {
	id := sessionID(r.Context())
	err := fn(id)
	if !errors.Is(err, session.ErrUnknownSession) {
		return id, err
	}
	h.logger.Debug("session lost mid-request, reissuing", "session_id", id)
	id, _, _ = h.svc.Session("")
	setSessionCookie(w, r, id)
	return id, fn(id)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// instrument records request counts and latency by chi route pattern, so
// path parameters do not explode label cardinality.
func instrument(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
