package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"mydocs/docs"
	"mydocs/internal/auth"
	"mydocs/internal/database"
	"mydocs/internal/database/migration"
	"mydocs/internal/filestore"
	handlers "mydocs/internal/http/handler"
	"mydocs/internal/http/middleware"
	apiotel "mydocs/internal/otel"
	"mydocs/internal/repository/postgres"
	"mydocs/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

On start the schema is created when missing, the storage backend is opened
(local directory or MinIO bucket) and the server listens on all interfaces at
PORT. APP_HOST is only reported in the startup log.
SIGINT and SIGTERM trigger a graceful shutdown.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := apiotel.Init(ctx, appLog)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			appLog.Error("tracing_shutdown_failed", "error", err)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, appLog, cfg.Database.Host); err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	verifier, err := auth.NewJWT(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	fileMetrics, err := filestore.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register filestore metrics: %w", err)
	}

	files := filestore.New(store, cfg.Storage.PublicBaseURL, appLog, fileMetrics)
	docRepo := postgres.NewDocumentPostgres(db)
	typeRepo := postgres.NewTypePostgres(db)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(cfg.IsProduction(), appLog),
		BodyLimit:             bodyLimit(cfg.Storage.MaxUploadSizeBytes()),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(appLog))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:            db,
		Documents:     service.NewDocumentService(files, docRepo, typeRepo, appLog),
		Types:         service.NewTypeService(typeRepo),
		Verifier:      verifier,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		appLog.Info("server_stopping")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			appLog.Error("server_shutdown_failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	appLog.Info("server_starting",
		"addr", addr,
		"app_host", cfg.AppHost,
		"app_env", cfg.AppEnv,
		"storage_driver", cfg.Storage.Driver,
		"max_upload_size", cfg.Storage.MaxUploadSize,
	)
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}
