package cmd

import (
	"context"
	"fmt"

	"inventory-sync/core/config"
	"inventory-sync/core/database"
	"inventory-sync/core/idempotency"
	"inventory-sync/core/index"
	"inventory-sync/core/logger"
	"inventory-sync/core/metrics"
	"inventory-sync/core/storage"
	"inventory-sync/feature/inventory/store"
	"inventory-sync/feature/inventory/syncer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pipeline bundles the collaborators shared by every command.
type pipeline struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    *store.GormStore
	index    *index.HTTPClient
	registry *prometheus.Registry
	metrics  *metrics.SyncMetrics
	engine   *syncer.Engine
}

// newPipeline loads configuration and wires the record store, the index
// client and the synchronization engine.
func newPipeline(ctx context.Context) (*pipeline, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l.Info("Connected to inventory database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name))

	client, err := index.NewClient(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to create index client: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewSyncMetrics(reg)

	opts := []syncer.Option{syncer.WithMetrics(m)}
	if cfg.Storage.Enabled {
		sc, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, sc, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			l.Warn("Report archive bucket unavailable", zap.Error(err))
		}
		opts = append(opts, syncer.WithReportSink(
			syncer.NewArchiveSink(sc, cfg.Storage.Bucket, cfg.Storage.ReportPrefix, l)))
	}

	s := store.NewGormStore(db)
	return &pipeline{
		cfg:      cfg,
		logger:   l,
		db:       db,
		store:    s,
		index:    client,
		registry: reg,
		metrics:  m,
		engine:   syncer.NewEngine(s, client, l, cfg.Sync, opts...),
	}, nil
}

// guard returns the event de-duplication guard and its close func.
func (p *pipeline) guard(ctx context.Context) (idempotency.Guard, func(), error) {
	if !p.cfg.Redis.Enabled() {
		return idempotency.NopGuard{}, func() {}, nil
	}

	client, err := idempotency.NewClient(ctx, p.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Info("Event de-duplication enabled", zap.String("redis", p.cfg.Redis.Addr))

	g := idempotency.NewRedisGuard(client, p.cfg.Redis.KeyPrefix, p.cfg.Redis.TTL())
	return g, func() { _ = client.Close() }, nil
}

func (p *pipeline) close() {
	if sqlDB, err := p.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = p.logger.Sync()
}
