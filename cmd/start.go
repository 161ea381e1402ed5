package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-matcher/core/config"
	"crm-matcher/core/crm"
	"crm-matcher/core/database"
	"crm-matcher/core/loader"
	"crm-matcher/core/logger"
	"crm-matcher/core/middleware/auth"
	"crm-matcher/core/middleware/rayid"
	"crm-matcher/core/storage"

	"crm-matcher/feature/filters"
	"crm-matcher/feature/matching"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title CRM Name Matcher API
// @version 1.0
// @description API for reconciling company lists against CRM filters.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the matcher server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Export Storage (Optional)
		var exporter *matching.Exporter
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional export storage unavailable", zap.Error(err))
		} else {
			exporter = matching.NewExporter(store, cfg.Storage.Bucket, logg)
		}

		// 6. Initialize CRM Client + Feature Loader
		crmClient := crm.NewHTTPClient(cfg.CRM, logg)
		fetchTimeout := time.Duration(cfg.Server.FetchTimeoutSeconds) * time.Second

		mgr := loader.NewManager()

		// Register Features
		registry := filters.NewFeature(db, logg)
		mgr.Register(registry)
		mgr.Register(matching.NewFeature(db, registry.Service(), crmClient, exporter, logg, fetchTimeout))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
