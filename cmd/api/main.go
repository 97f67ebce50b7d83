package main

import (
	"fmt"
	"net/http"

	"github.com/workshift-ph/timeclock-backend/internal/config"
	appHTTP "github.com/workshift-ph/timeclock-backend/internal/handler/http"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/cron"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/database"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/jwt"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/oauth"
	"github.com/workshift-ph/timeclock-backend/internal/pkg/sse"
	"github.com/workshift-ph/timeclock-backend/internal/repository/postgresql"
	authService "github.com/workshift-ph/timeclock-backend/internal/service/auth"
	payrollService "github.com/workshift-ph/timeclock-backend/internal/service/payroll"
	settingsService "github.com/workshift-ph/timeclock-backend/internal/service/settings"
	timetrackingService "github.com/workshift-ph/timeclock-backend/internal/service/timetracking"
	userService "github.com/workshift-ph/timeclock-backend/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	payslipLogRepo := postgresql.NewPayslipLogRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	userSvc := userService.NewUserService(db, userRepo)
	trackingSvc := timetrackingService.NewTimeTrackingService(db, timeEntryRepo, payslipRepo, payslipLogRepo, userRepo, hub)
	payrollSvc := payrollService.NewPayrollService(db, payslipRepo, payslipLogRepo, timeEntryRepo, userRepo, settingsRepo, hub)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userSvc)
	trackingHandler := appHTTP.NewTimeTrackingHandler(trackingSvc, jwtService, hub)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	scheduler := cron.NewScheduler()
	payrollJobs := cron.NewPayrollJobs(payrollSvc, cfg.App.RecalcInterval)
	payrollJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		userHandler,
		trackingHandler,
		payrollHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
