package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventory-sync/core/events"
	"inventory-sync/core/loader"
	"inventory-sync/core/logger"
	"inventory-sync/core/metrics"
	"inventory-sync/core/middleware/auth"
	"inventory-sync/core/middleware/rayid"
	"inventory-sync/feature/health"
	"inventory-sync/feature/inventory"
	"inventory-sync/feature/inventory/syncer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "inventory-sync/docs/swagger"
)

// @title Inventory Sync API
// @version 1.0
// @description Keeps the search index consistent with the inventory record store.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the synchronizer",
	Long: `Loads every inventory record into the index, then serves the HTTP API and,
when enabled, consumes stock movement events from Kafka and runs the periodic
reconciliation sweep until interrupted.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.close()
	zap.ReplaceGlobals(p.logger)
	logg := p.logger
	cfg := p.cfg

	// Initial full load before accepting any event
	p.engine.InitializeCache(ctx)

	guard, closeGuard, err := p.guard(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize event de-duplication: %w", err)
	}
	defer closeGuard()

	svc := inventory.NewService(p.engine, p.store, guard, p.metrics, logg)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	mgr.Register(health.NewFeature(p.db, p.index, logg))
	mgr.Register(inventory.NewFeature(svc))

	// RayID first so every later log line carries it
	app.Use(rayid.New())

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

	app.Use(auth.New(auth.Config{
		ApiKey:         cfg.Server.ApiKey,
		PublicPrefixes: cfg.Server.PublicPrefixes(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler(p.registry))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	var consumer *events.Consumer
	if cfg.Kafka.Enabled {
		consumer, err = events.NewConsumer(cfg.Kafka, svc.HandleMessage, logg)
		if err != nil {
			return err
		}
		logg.Info("Consuming stock movements",
			zap.String("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
		return app.Listen(cfg.Server.Address())
	})

	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	if interval := cfg.Sync.SweepInterval(); interval > 0 {
		sweeper := syncer.NewSweeper(p.engine, interval, logg)
		g.Go(func() error {
			return sweeper.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logg.Info("Shutting down server...")
		return app.Shutdown()
	})

	return g.Wait()
}
