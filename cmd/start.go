package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/cache"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/scheduler"
	"catalog-sync/core/storage"

	"catalog-sync/feature/catalog"
	catalogmodels "catalog-sync/feature/catalog/models"
	"catalog-sync/feature/distributor"
	"catalog-sync/feature/supplier"
	suppliermodels "catalog-sync/feature/supplier/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Catalog Sync API
// @version 1.0
// @description API for product catalog administration and distributor inventory sync.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog service",
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
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(
			&catalogmodels.Product{},
			&catalogmodels.Category{},
			&suppliermodels.Supplier{},
			&suppliermodels.TestPull{},
		); err != nil {
			logg.Fatal("Failed to migrate database schema", zap.Error(err))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(store, cfg.Storage.Bucket, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Response Cache (Optional)
		var cacheHandler fiber.Handler
		if cfg.Cache.Enabled {
			ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
			cacheHandler = cache.New(cache.NewRedisStore(cfg.Cache), ttl, logg).Handler()
			logg.Info("Response cache enabled", zap.String("redis", cfg.Cache.Addr))
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		catalogFeature := catalog.NewFeature(db, store, cfg.Storage.Bucket, cacheHandler, logg)
		distributorFeature := distributor.NewFeature(catalogFeature.Service().Repo(), cfg.Distributor, logg)
		mgr.Register(catalogFeature)
		mgr.Register(supplier.NewFeature(db, logg))
		mgr.Register(distributorFeature)

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
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Periodic Sync Scheduler (Optional)
		var sched *scheduler.Scheduler
		if cfg.Scheduler.Enabled && distributorFeature.IsEnabled() {
			sched = scheduler.New(logg)
			if err := sched.Register(cfg.Scheduler.Cron, syncJob{service: distributorFeature.Service(), logger: logg}); err != nil {
				logg.Fatal("Failed to register sync schedule", zap.Error(err))
			}
			sched.Start()
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if sched != nil {
			sched.Stop()
		}
		_ = app.Shutdown()
	},
}

// ensureBucket creates the archive bucket when missing. Storage being down
// at boot is not fatal; imports simply skip archiving until it recovers.
func ensureBucket(store storage.Client, bucket string, logg *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		logg.Warn("Failed to check archive bucket", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	if exists {
		return
	}
	if err := store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logg.Warn("Failed to create archive bucket", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	logg.Info("Created archive bucket", zap.String("bucket", bucket))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
