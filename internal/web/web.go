// Package web serves the wizard as server-rendered pages. Every POST runs one wizard action
// and redirects back to "/", which renders whatever step the session is on.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"booking-wizard/internal/auth"
	"booking-wizard/internal/logging"
	"booking-wizard/internal/middleware"
	"booking-wizard/internal/scheduler"
)

const cookieName = "booking_session"

type Options struct {
	Service *scheduler.Service
	Secret  string
	Logger  *logging.Logger
	// SecureCookie marks the session cookie Secure; set it behind TLS.
	SecureCookie bool
	// Limiter caps how fast one client can start sessions. Nil disables the cap.
	Limiter *middleware.RateLimiter
}

type Server struct {
	svc     *scheduler.Service
	secret  string
	log     *logging.Logger
	secure  bool
	limiter *middleware.RateLimiter
	pages   *renderer
}

func New(o Options) (*Server, error) {
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}
	log := o.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Server{
		svc:     o.Service,
		secret:  o.Secret,
		log:     log,
		secure:  o.SecureCookie,
		limiter: o.Limiter,
		pages:   pages,
	}, nil
}

// Routes mounts the pages on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Get("/invite.ics", s.handleInvite)

		r.Post("/events/select", s.handleSelectEvent)
		r.Post("/calendar/view", s.handleSetView)
		r.Post("/calendar/prev", s.action(scheduler.OpPrev))
		r.Post("/calendar/next", s.action(scheduler.OpNext))
		r.Post("/calendar/date", s.handleSelectDate)
		r.Post("/calendar/date/clear", s.action(scheduler.OpClearDate))
		r.Post("/calendar/time", s.handleSelectTime)
		r.Post("/calendar/slot", s.handleSelectSlot)
		r.Post("/booking/field", s.handleSetField)
		r.Post("/booking", s.handleSubmit)
		r.Post("/back", s.action(scheduler.OpBack))
		r.Post("/reset", s.action(scheduler.OpBackToStart))
	})
}

// withSession binds the cookie's session to the request, starting a new one when the cookie
// is missing, forged or points at an expired session.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := s.cookieSession(r); ok {
			next.ServeHTTP(w, r.WithContext(middleware.WithSessionID(r.Context(), id)))
			return
		}

		if s.limiter != nil && !s.limiter.Allow(middleware.ClientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		page, err := s.svc.Start(r.Context())
		if err != nil {
			s.internalError(w, err)
			return
		}
		tok, err := auth.MakeToken(page.SessionID, s.secret)
		if err != nil {
			s.internalError(w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    tok,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		// a fresh session has nothing to act on; POSTs land on the first page
		if r.Method != http.MethodGet {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithSessionID(r.Context(), page.SessionID)))
	})
}

func (s *Server) cookieSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	claims, err := auth.ParseToken(c.Value, s.secret)
	if err != nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	ok, err := s.svc.Exists(ctx, claims.SessionID)
	if err != nil {
		s.log.Error("session lookup failed", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return claims.SessionID, true
}

func sessionID(r *http.Request) string {
	id, _ := middleware.SessionID(r.Context())
	return id
}

// internalError logs the real error and returns a generic message to the client.
func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
