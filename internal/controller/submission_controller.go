package controller

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"bereschoon_backend/internal/model"
	"bereschoon_backend/internal/ratelimit"
	"bereschoon_backend/internal/repository"
	"bereschoon_backend/pkg/utils/storage"
	"bereschoon_backend/pkg/webhook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// isoTimestamp matches what browsers produce for Date.toISOString.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

type SubmissionController struct {
	Submissions repository.SubmissionRepository
	Costs       repository.CostLedger
	Photos      storage.ObjectStore
	Webhook     webhook.Notifier
	Limit       ratelimit.Window
	CostAmount  float64
	Log         *zap.Logger
	Now         func() time.Time
}

func NewSubmissionController(
	submissions repository.SubmissionRepository,
	costs repository.CostLedger,
	photos storage.ObjectStore,
	notifier webhook.Notifier,
	costAmount float64,
	log *zap.Logger,
) *SubmissionController {
	return &SubmissionController{
		Submissions: submissions,
		Costs:       costs,
		Photos:      photos,
		Webhook:     notifier,
		Limit:       ratelimit.NewWindow(ratelimit.DefaultWindow),
		CostAmount:  costAmount,
		Log:         log,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateSubmission accepts a configurator lead: a multipart form with the
// visitor's contact details and a photo.
func (h *SubmissionController) CreateSubmission(c *fiber.Ctx) error {
	ctx := c.UserContext()

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	photo, photoErr := c.FormFile("photo")

	h.Log.Info("received submission",
		zap.String("email", email),
		zap.Bool("has_photo", photoErr == nil),
		zap.String("service", c.FormValue("service")),
	)

	if name == "" || email == "" || photoErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Naam, email en foto zijn verplicht",
		})
	}

	service := model.ParseService(c.FormValue("service"))
	if service == nil && strings.TrimSpace(c.FormValue("service")) != "" {
		h.Log.Warn("ignoring unknown service value", zap.String("service", c.FormValue("service")))
	}

	if decision, ok := h.checkRateLimit(ctx, email); !ok {
		c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(decision.RetryAfterSeconds, 10))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":             decision.Message(),
			"retry_after_seconds": decision.RetryAfterSeconds,
			"next_allowed_at":     decision.NextAllowedAt.Format(isoTimestamp),
		})
	}

	body, err := readFile(photo)
	if err != nil {
		h.Log.Error("could not read uploaded photo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Er is een onverwachte fout opgetreden",
		})
	}

	contentType := photo.Header.Get(fiber.HeaderContentType)
	path, err := h.Photos.Put(ctx, storage.UniqueName(photo.Filename), body, contentType)
	if err != nil {
		h.Log.Error("storage upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Kon foto niet uploaden",
		})
	}
	h.Log.Info("photo uploaded", zap.String("path", path))

	photoURL := strings.TrimSpace(h.Photos.PublicURL(path))
	if photoURL == "" {
		h.Log.Error("no public url for uploaded photo", zap.String("path", path))
		h.removePhoto(ctx, path)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Kon foto URL niet genereren",
		})
	}

	submission := &model.Submission{
		Name:      name,
		Email:     email,
		Address:   model.OptionalString(c.FormValue("address")),
		Phone:     model.OptionalString(c.FormValue("phone")),
		Service:   service,
		PhotoURL:  photoURL,
		CreatedAt: h.now(),
	}

	if err := h.Submissions.Create(ctx, submission); err != nil {
		h.Log.Error("could not save submission",
			zap.String("code", repository.ErrorCode(err)),
			zap.Error(err),
		)
		h.removePhoto(ctx, path)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Kon gegevens niet opslaan",
			"details": err.Error(),
			"code":    repository.ErrorCode(err),
		})
	}
	h.Log.Info("submission saved", zap.String("submission_id", submission.ID))

	h.recordCost(ctx)
	h.notify(ctx, submission)

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Aanvraag succesvol ontvangen",
		"submission_id":   submission.ID,
		"photo_url":       photoURL,
		"saved_photo_url": submission.PhotoURL,
	})
}

// checkRateLimit reports false with the blocking decision when the address
// submitted inside the window. Lookup failures let the request through.
func (h *SubmissionController) checkRateLimit(ctx context.Context, email string) (ratelimit.Decision, bool) {
	normalized := model.NormalizeEmail(email)

	last, err := h.Submissions.LatestByEmail(ctx, normalized)
	if err != nil {
		h.Log.Error("rate limit query failed", zap.String("email", normalized), zap.Error(err))
		return ratelimit.Decision{Allowed: true}, true
	}
	if last == nil {
		return ratelimit.Decision{Allowed: true}, true
	}

	decision := h.Limit.Check(last.CreatedAt, h.now())
	if !decision.Allowed {
		h.Log.Info("rate limit exceeded",
			zap.String("email", normalized),
			zap.Time("last_submission_at", last.CreatedAt),
			zap.Int64("retry_after_seconds", decision.RetryAfterSeconds),
		)
	}
	return decision, decision.Allowed
}

func (h *SubmissionController) removePhoto(ctx context.Context, path string) {
	if err := h.Photos.Delete(ctx, path); err != nil {
		h.Log.Error("failed to clean up uploaded photo", zap.String("path", path), zap.Error(err))
		return
	}
	h.Log.Info("cleaned up uploaded photo", zap.String("path", path))
}

func (h *SubmissionController) recordCost(ctx context.Context) {
	if h.Costs == nil {
		return
	}
	entry := &model.GenerationCost{
		Amount:    h.CostAmount,
		Source:    model.CostSourceSubmission,
		CreatedAt: h.now(),
	}
	if err := h.Costs.Record(ctx, entry); err != nil {
		h.Log.Error("failed to record generation cost", zap.Error(err))
	}
}

// notify forwards the lead to n8n. Its outcome is only logged: the lead is
// already stored.
func (h *SubmissionController) notify(ctx context.Context, submission *model.Submission) {
	if h.Webhook == nil {
		h.Log.Warn("N8N_WEBHOOK_URL not configured")
		return
	}

	err := h.Webhook.Notify(ctx, webhook.SubmissionPayload{
		SubmissionID: submission.ID,
		Name:         submission.Name,
		Email:        submission.Email,
		Address:      submission.Address,
		Phone:        submission.Phone,
		Service:      submission.Service,
		PhotoURL:     submission.PhotoURL,
	})
	switch {
	case errors.Is(err, webhook.ErrNotConfigured):
		h.Log.Warn("N8N_WEBHOOK_URL not configured")
	case err != nil:
		h.Log.Error("n8n webhook error", zap.String("submission_id", submission.ID), zap.Error(err))
	default:
		h.Log.Info("forwarded submission to n8n", zap.String("submission_id", submission.ID))
	}
}

func (h *SubmissionController) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now()
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
