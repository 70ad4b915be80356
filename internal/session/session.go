// Package session keeps the per-browser wizard state between requests. Sessions live for a
// sliding TTL and are never archived.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/wizard"
)

var ErrNotFound = errors.New("session not found")

// Session is one visitor's progress through the wizard.
type Session struct {
	ID        string          `json:"id"`
	Wizard    wizard.Snapshot `json:"wizard"`
	Calendar  *calendar.State `json:"calendar,omitempty"`
	Form      booking.Form    `json:"form"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New returns an empty session with a fresh ID.
func New(now time.Time) *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// Store persists sessions. Save refreshes the TTL.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
