package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/soraiaclinic/clinic-platform/internal/api/router"
	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/auth"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	appconfig "github.com/soraiaclinic/clinic-platform/internal/config"
	"github.com/soraiaclinic/clinic-platform/internal/dashboard"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
	"github.com/soraiaclinic/clinic-platform/internal/kanban"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
	"github.com/soraiaclinic/clinic-platform/internal/notify"
	"github.com/soraiaclinic/clinic-platform/internal/observability/metrics"
	"github.com/soraiaclinic/clinic-platform/internal/reports"
	"github.com/soraiaclinic/clinic-platform/internal/retention"
	"github.com/soraiaclinic/clinic-platform/internal/scheduling"
	"github.com/soraiaclinic/clinic-platform/internal/settings"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

func main() {
	// Load .env in development; ignore absence in production.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bookingMetrics := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	// Storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		clientRepo   clients.Repository
		apptRepo     appointments.Repository
		finRepo      finance.Repository
		reportRepo   reports.Repository
		kanbanRepo   kanban.Repository
		bookingStore scheduling.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}

		clientRepo = clients.NewPostgresRepository(pool)
		apptRepo = appointments.NewPostgresRepository(pool)
		finRepo = finance.NewPostgresRepository(pool)
		reportRepo = reports.NewPostgresRepository(pool)
		kanbanRepo = kanban.NewPostgresRepository(pool)
		bookingStore = scheduling.NewPostgresStore(pool)
		logger.Info("using postgres storage")
	} else {
		memClients := clients.NewInMemoryRepository()
		memAppts := appointments.NewInMemoryRepository()
		memFinance := finance.NewInMemoryRepository()
		clientRepo = memClients
		apptRepo = memAppts
		finRepo = memFinance
		reportRepo = reports.NewInMemoryRepository()
		kanbanRepo = kanban.NewInMemoryRepository()
		bookingStore = scheduling.NewMemoryStore(memClients, memAppts, memFinance)
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// Settings: Redis-backed when configured so edits survive restarts.
	defaults := settings.Settings{
		DefaultPrice:    cfg.DefaultPrice,
		DefaultDuration: cfg.DefaultDurationMin,
	}
	var settingsStore settings.Store = settings.NewMemoryStore(defaults)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		settingsStore = settings.NewRedisStore(redisClient, defaults)
		logger.Info("using redis settings store", "addr", cfg.RedisAddr)
	}

	// Message generation: Gemini when a key is present, fallback-only otherwise.
	var llm messages.LLMClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := messages.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = gemini.Close() }()
		llm = gemini
		logger.Info("gemini message generation enabled", "model", cfg.GeminiModelID)
	} else {
		logger.Warn("GEMINI_API_KEY not set, messages use fallback templates only")
	}
	var msgCache messages.Cache
	if redisClient != nil {
		msgCache = messages.NewRedisCache(redisClient, time.Hour)
	}
	generator := messages.NewGenerator(llm, msgCache, logger, bookingMetrics)

	// Email delivery for booking confirmations and retention outreach.
	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sg != nil {
			emailSender = sg
		}
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	}
	if emailSender == nil {
		logger.Warn("email delivery not configured, confirmations are logged only")
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, generator, logger)

	// Booking core.
	windows := scheduling.DefaultWindows()
	windows.BufferMin = cfg.SlotBufferMin
	calc, err := scheduling.NewCalculator(windows, cfg.DefaultDurationMin, cfg.ClinicTimezone)
	if err != nil {
		logger.Error("invalid attendance windows", "error", err)
		os.Exit(1)
	}
	bookingService := scheduling.NewService(
		bookingStore,
		settingsStore,
		calc,
		scheduling.NewRandomLinkGenerator("soraia"),
		logger,
		bookingMetrics,
	)

	retentionService := retention.NewService(clientRepo, generator, cfg.RetentionInactiveDays, logger)
	go retention.NewWorker(retentionService, cfg.RetentionSweepInterval, logger, bookingMetrics).Run(ctx)

	dashboardService := dashboard.NewService(clientRepo, apptRepo, finRepo, calc.Location())

	routerCfg := &router.Config{
		Logger:              logger,
		BookingHandler:      scheduling.NewHandler(bookingService, notifier, logger),
		MessagesHandler:     messages.NewHandler(generator, logger),
		AuthHandler:         auth.NewHandler(auth.NewService(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminJWTSecret, cfg.AdminSessionTTL), logger),
		ClientsHandler:      clients.NewHandler(clientRepo, logger),
		AppointmentsHandler: appointments.NewHandler(apptRepo, clientRepo, logger),
		FinanceHandler:      finance.NewHandler(finRepo, logger),
		ReportsHandler:      reports.NewHandler(reportRepo, logger),
		KanbanHandler:       kanban.NewHandler(kanbanRepo, logger),
		SettingsHandler:     settings.NewHandler(settingsStore, logger),
		RetentionHandler:    retention.NewHandler(retentionService, logger),
		DashboardHandler:    dashboard.NewHandler(dashboardService, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		BookingRateLimit:    cfg.BookingRateLimit,
		BookingRateBurst:    cfg.BookingRateBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
