package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/auth"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/dashboard"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
	httpmiddleware "github.com/soraiaclinic/clinic-platform/internal/http/middleware"
	"github.com/soraiaclinic/clinic-platform/internal/kanban"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
	"github.com/soraiaclinic/clinic-platform/internal/reports"
	"github.com/soraiaclinic/clinic-platform/internal/retention"
	"github.com/soraiaclinic/clinic-platform/internal/scheduling"
	"github.com/soraiaclinic/clinic-platform/internal/settings"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	BookingHandler      *scheduling.Handler
	MessagesHandler     *messages.Handler
	AuthHandler         *auth.Handler
	ClientsHandler      *clients.Handler
	AppointmentsHandler *appointments.Handler
	FinanceHandler      *finance.Handler
	ReportsHandler      *reports.Handler
	KanbanHandler       *kanban.Handler
	SettingsHandler     *settings.Handler
	RetentionHandler    *retention.Handler
	DashboardHandler    *dashboard.Handler

	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests/sec and burst for the public booking surface. Zero disables
	// rate limiting.
	BookingRateLimit float64
	BookingRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)

		if cfg.BookingHandler != nil {
			public.Route("/booking", func(booking chi.Router) {
				if cfg.BookingRateLimit > 0 {
					booking.Use(httpmiddleware.RateLimit(cfg.BookingRateLimit, cfg.BookingRateBurst))
				}
				booking.Mount("/", cfg.BookingHandler.Routes())
			})
		}
		if cfg.MessagesHandler != nil {
			public.Post("/api/generate-message", cfg.MessagesHandler.Generate)
		}
		if cfg.AuthHandler != nil {
			public.Post("/auth/login", cfg.AuthHandler.Login)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

			if cfg.ClientsHandler != nil {
				admin.Mount("/clients", cfg.ClientsHandler.Routes())
			}
			if cfg.AppointmentsHandler != nil {
				admin.Mount("/appointments", cfg.AppointmentsHandler.Routes())
			}
			if cfg.FinanceHandler != nil {
				admin.Mount("/finance", cfg.FinanceHandler.Routes())
			}
			if cfg.ReportsHandler != nil {
				admin.Mount("/reports", cfg.ReportsHandler.Routes())
			}
			if cfg.KanbanHandler != nil {
				admin.Mount("/kanban", cfg.KanbanHandler.Routes())
			}
			if cfg.SettingsHandler != nil {
				admin.Get("/settings", cfg.SettingsHandler.Get)
				admin.Put("/settings", cfg.SettingsHandler.Update)
			}
			if cfg.RetentionHandler != nil {
				admin.Mount("/retention", cfg.RetentionHandler.Routes())
			}
			if cfg.DashboardHandler != nil {
				admin.Get("/dashboard", cfg.DashboardHandler.Snapshot)
			}
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
