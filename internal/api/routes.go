package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	// Legacy paths used by existing clients.
	app.Post("/submit", handler.ResolveUser, handler.SubmitLog)
	app.Get("/logs", handler.ResolveUser, handler.ListLogs)

	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.ResolveUser)

	logs := api.Group("/logs")
	logs.Get("", handler.ListLogs)
	logs.Post("", handler.SubmitLog)
	logs.Get("/:date", handler.GetLog)
	logs.Delete("/:date", handler.DeleteLog)

	api.Get("/tags/:kind", handler.ListTags)

	periods := api.Group("/periods")
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.CreatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	users := api.Group("/users")
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)

	stats := api.Group("/stats")
	stats.Get("/weekly", handler.WeeklyStats)
	stats.Get("/phases", handler.PhaseStats)
	stats.Get("/factors", handler.FactorStats)
	stats.Get("/periods", handler.PeriodStats)
	stats.Get("/tags/:kind", handler.TagStats)
	stats.Get("/patterns", handler.PatternStats)

	chartRoutes := api.Group("/charts")
	chartRoutes.Get("/weekly.png", handler.WeeklyChart)
	chartRoutes.Get("/phases.png", handler.PhaseChart)
	chartRoutes.Get("/factors.png", handler.FactorChart)
	chartRoutes.Get("/periods.png", handler.PeriodChart)
	chartRoutes.Get("/period_gaps.png", handler.PeriodGapChart)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
