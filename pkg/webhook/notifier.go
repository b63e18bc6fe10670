// Package webhook forwards new leads to the n8n automation endpoint.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrNotConfigured = errors.New("webhook: endpoint not configured")

// SubmissionPayload is what n8n receives for a new lead. It carries the
// public photo URL, never the image itself.
type SubmissionPayload struct {
	SubmissionID string  `json:"submission_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Service      *string `json:"service"`
	PhotoURL     string  `json:"photo_url"`
}

type Notifier interface {
	Notify(ctx context.Context, payload SubmissionPayload) error
}

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook: endpoint answered %d: %s", e.StatusCode, e.Body)
}

type HTTPNotifier struct {
	url     string
	timeout time.Duration
}

// NewHTTPNotifier returns a notifier for url. An empty url yields a notifier
// whose Notify always returns ErrNotConfigured. A zero timeout waits forever.
func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{url: strings.TrimSpace(url), timeout: timeout}
}

func (n *HTTPNotifier) Notify(ctx context.Context, payload SubmissionPayload) error {
	if n == nil || n.url == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(n.url).JSON(payload)
	if n.timeout > 0 {
		agent.Timeout(n.timeout)
	}
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook: post to endpoint: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return &StatusError{StatusCode: code, Body: truncate(string(body), 512)}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
