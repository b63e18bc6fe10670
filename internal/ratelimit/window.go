package ratelimit

import (
	"fmt"
	"math"
	"time"
)

const DefaultWindow = 24 * time.Hour

// Decision is the outcome of checking a submitter against the window.
type Decision struct {
	Allowed           bool
	RetryAfterSeconds int64
	NextAllowedAt     time.Time
}

// Window allows one submission per submitter per Period.
type Window struct {
	Period time.Duration
}

func NewWindow(period time.Duration) Window {
	if period <= 0 {
		period = DefaultWindow
	}
	return Window{Period: period}
}

// Check decides whether a submitter whose previous submission was at last
// may submit again at now. A zero last means no previous submission.
func (w Window) Check(last, now time.Time) Decision {
	if last.IsZero() {
		return Decision{Allowed: true}
	}

	elapsed := now.Sub(last)
	if elapsed >= w.Period {
		return Decision{Allowed: true}
	}

	remaining := w.Period - elapsed
	retry := int64(math.Ceil(remaining.Seconds()))
	if retry < 0 {
		retry = 0
	}

	return Decision{
		Allowed:           false,
		RetryAfterSeconds: retry,
		NextAllowedAt:     last.Add(w.Period).UTC(),
	}
}

// Message is the Dutch explanation shown to the visitor. Minutes are rounded
// down.
func (d Decision) Message() string {
	totalMinutes := d.RetryAfterSeconds / 60
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return fmt.Sprintf(
		"U heeft in de afgelopen 24 uur al 1 aanvraag gedaan. Probeer opnieuw over %d uur en %d minuten.",
		hours, minutes,
	)
}
