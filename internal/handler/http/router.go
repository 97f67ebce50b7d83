package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workshift-ph/timeclock-backend/internal/config"
	"github.com/workshift-ph/timeclock-backend/internal/handler/http/middleware"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	trackingHandler TimeTrackingHandler,
	payrollHandler PayrollHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// SSE stream authenticates with its own query token.
		r.Get("/events", trackingHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/me", userHandler.Me)
			r.Put("/me/required-hours", userHandler.UpdateRequiredHours)
			r.Get("/events/token", trackingHandler.GetSSEToken)

			r.Route("/time", func(r chi.Router) {
				r.Post("/clock-in", trackingHandler.ClockIn)
				r.Post("/clock-out", trackingHandler.ClockOut)
				r.Get("/today", trackingHandler.TodayEntry)
				r.Get("/progress", trackingHandler.Progress)
				r.Post("/overtime", trackingHandler.RequestOvertime)
				r.Get("/notifications", trackingHandler.Notifications)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/logs", trackingHandler.TimeLogs)
					r.Get("/active", trackingHandler.ActiveUsers)
					r.Get("/overtime", trackingHandler.ListOvertimeRequests)
					r.Put("/overtime/{id}", trackingHandler.ApproveOvertime)
					r.Put("/adjust/{userId}", trackingHandler.AdjustTime)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/history", payrollHandler.History)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.Generate)
					r.Get("/report", payrollHandler.Report)
					r.Put("/payslips/{id}", payrollHandler.Update)
					r.Post("/release", payrollHandler.Release)
					r.Post("/recalculate", payrollHandler.Recalculate)
					r.Get("/logs", payrollHandler.Logs)
					r.Delete("/logs/{id}", payrollHandler.DeleteLog)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Deactivate)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/breaktime", settingsHandler.Breaktime)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/breaktime", settingsHandler.UpdateBreaktime)
				})
			})
		})
	})

	return r
}
