package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/cyclejournal/internal/logging"
	"go.uber.org/zap/zapcore"
)

const requestIDHeader = "X-Request-ID"

type AppOptions struct {
	CORSOrigins string
	Logger      *logging.Logger
	// AccessLog enables one log line per request.
	AccessLog bool
}

// NewApp builds the Fiber application with the middleware stack and every route.
func NewApp(handler *Handler, options AppOptions) *fiber.App {
	appLogger := options.Logger
	if appLogger == nil {
		appLogger = logging.NewNop()
	}
	origins := options.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "cyclejournal",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return apiError(c, fiberErr.Code, fiberErr.Message)
			}
			appLogger.Error("unhandled request error", "path", c.Path(), "error", err)
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    requestIDHeader,
		Generator: uuid.NewString,
	}))
	if options.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: appLogger.Writer(zapcore.InfoLevel),
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
