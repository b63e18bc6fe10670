package server

import (
	"errors"

	"bereschoon_backend/internal/controller"
	"bereschoon_backend/internal/middleware"
	"bereschoon_backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Deps struct {
	Submissions *controller.SubmissionController
	Tracking    *controller.TrackingController
	Track       *controller.TrackController
	Admins      repository.AdminRepository
	JWTSecret   []byte
	BodyLimitMB int
	AccessLog   bool
	Log         *zap.Logger
}

func New(d Deps) *fiber.App {
	bodyLimit := d.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 12
	}

	app := fiber.New(fiber.Config{
		AppName:   "bereschoon-backend",
		BodyLimit: bodyLimit * 1024 * 1024,
		// Form values outlive the handler: they go to the webhook and the store.
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.SetCORSHeaders(c)

			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				d.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(code).JSON(fiber.Map{
					"error": "Er is een onverwachte fout opgetreden",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORS())
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}

	setupRoutes(app, d)
	return app
}

func setupRoutes(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Configurator lead intake, also reachable under the old function name.
	api.Post("/submissions", d.Submissions.CreateSubmission)
	app.Post("/functions/v1/submit-driveway", d.Submissions.CreateSubmission)

	track := api.Group("/track")
	track.Get("/", d.Track.TrackByOrderNumber)
	track.Get("/:code", d.Track.TrackByCode)

	admin := api.Group("/admin", middleware.AdminOnly(d.JWTSecret, d.Admins, d.Log))
	admin.Post("/orders/tracking", d.Tracking.UpdateTracking)
	app.Post("/functions/v1/update-order-tracking",
		middleware.AdminOnly(d.JWTSecret, d.Admins, d.Log),
		d.Tracking.UpdateTracking,
	)
}
