package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gspevents/event-admin/handlers"
	"github.com/gspevents/event-admin/middleware"
)

// SetupRoutes wires every console endpoint onto the router. Read-only venue
// and host listings stay public for the client app; everything that mutates
// state sits behind admin authentication.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	hostHandler *handlers.HostHandler,
	venueHandler *handlers.VenueHandler,
	teamHandler *handlers.TeamHandler,
	eventHandler *handlers.EventHandler,
	reportHandler *handlers.ReportHandler,
	scheduleHandler *handlers.ScheduleHandler,
	uploadHandler *handlers.UploadHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	// Public read surface used by the client app and event submitters.
	router.Get("/hosts", hostHandler.List)
	router.Get("/venues", venueHandler.List)
	router.Post("/events/{eventID}/add-photo-url", eventHandler.AddPhotoURL)
	router.Post("/generate-upload-url", uploadHandler.Upload)
	router.Get("/ws/console", webSocketHandler.ServeConsole)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtSecret))

		r.Route("/search", func(r chi.Router) {
			r.Get("/hosts", hostHandler.Search)
			r.Get("/venues", venueHandler.Search)
			r.Get("/teams", teamHandler.Search)
		})

		r.Route("/hosts", func(r chi.Router) {
			r.Get("/{hostID}", hostHandler.GetByID)
			r.Post("/", hostHandler.Create)
			r.Put("/{hostID}", hostHandler.Update)
			r.Delete("/{hostID}", hostHandler.Delete)
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/{venueID}", venueHandler.GetByID)
			r.Post("/", venueHandler.Create)
			r.Put("/{venueID}", venueHandler.Update)
			r.Delete("/{venueID}", venueHandler.Delete)
			r.Post("/{venueID}/generate-access-key", venueHandler.GenerateAccessKey)
		})

		r.Route("/tournament-teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/suggest-links", teamHandler.SuggestLinks)
			r.Get("/{teamID}", teamHandler.GetByID)
			r.Post("/", teamHandler.Create)
			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
		})

		r.Route("/teams/{teamID}/weekly-scores", func(r chi.Router) {
			r.Get("/", teamHandler.WeeklyScores)
			r.Put("/", teamHandler.SaveWeeklyScores)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Get("/{eventID}", eventHandler.GetByID)
			r.Put("/{eventID}", eventHandler.Update)
			r.Delete("/{eventID}", eventHandler.Delete)
			r.Post("/{eventID}/validate", eventHandler.Validate)
			r.Delete("/{eventID}/photos", eventHandler.DeletePhotoURL)
		})

		r.Post("/bulk-upload-summary-events", eventHandler.BulkUploadSummary)
		r.Post("/bulk-upload-csv", eventHandler.BulkUploadCSV)
		r.Get("/bulk-upload-template", eventHandler.BulkUploadTemplate)

		r.Route("/weekly-report", func(r chi.Router) {
			r.Get("/", reportHandler.WeeklyReport)
			r.Get("/export", reportHandler.ExportCSV)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", scheduleHandler.Rows)
			r.Put("/", scheduleHandler.Save)
			r.Get("/text", scheduleHandler.Text)
			r.Get("/calendar.ics", scheduleHandler.Calendar)
			r.Post("/announce", scheduleHandler.Announce)
		})
	})
}
