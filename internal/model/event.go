package model

import (
	"time"

	"github.com/idilsaglam/countdown/internal/countdown"
)

// Event is a saved countdown definition: what to count down to and how to
// show it. Runtime countdown state is never stored.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`

	// Optional per-event overrides; empty means "use the defaults".
	Text string `json:"text,omitempty"`
	Fast bool   `json:"fast,omitempty"`
}

// Span is the full countdown window, from creation to the target.
func (e Event) Span() time.Duration {
	if e.CreatedAt.IsZero() || !e.Date.After(e.CreatedAt) {
		return 0
	}
	return e.Date.Sub(e.CreatedAt)
}

// Options turns the stored overrides into widget options.
func (e Event) Options() []countdown.Option {
	opts := []countdown.Option{countdown.WithDate(e.Date)}
	if e.Text != "" {
		opts = append(opts, countdown.WithText(e.Text))
	}
	if e.Fast {
		opts = append(opts, countdown.WithFast(true))
	}
	return opts
}
