package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inventory-sync/core/index"
	"inventory-sync/core/metrics"
	"inventory-sync/feature/inventory/document"
	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportSink receives the report of every full reload.
type ReportSink interface {
	Record(ctx context.Context, report *ReloadReport)
}

// Engine keeps the index consistent with the record store.
type Engine struct {
	store   store.Store
	index   index.Client
	logger  *zap.Logger
	cfg     Config
	metrics *metrics.SyncMetrics
	sink    ReportSink

	// reloadMu orders full reloads so an older snapshot never lands last.
	reloadMu sync.Mutex
	items    *keyedMutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics records reload and adjustment metrics.
func WithMetrics(m *metrics.SyncMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithReportSink forwards every reload report to sink.
func WithReportSink(sink ReportSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// NewEngine creates a synchronization engine over injected collaborators.
func NewEngine(s store.Store, client index.Client, logger *zap.Logger, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		index:  client,
		logger: logger,
		cfg:    cfg,
		items:  newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InitializeCache loads every record into the index.
// A failed record fetch degrades to an empty set: the index is left as is.
// Encode and upsert failures are counted per document and never abort the sweep.
func (e *Engine) InitializeCache(ctx context.Context) *ReloadReport {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	report := &ReloadReport{StartedAt: time.Now()}
	e.logger.Info("Initializing cache")

	items, err := e.store.FindAll(ctx)
	if err != nil {
		e.logger.Error("Failed to fetch inventory, index left unchanged", zap.Error(err))
		report.StoreError = err.Error()
		items = nil
	}
	report.Total = len(items)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.cfg.workers())
	for _, item := range items {
		g.Go(func() error {
			res, err := e.indexItem(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.recordFailure(item.ID, err, errors.Is(err, document.ErrMissingID))
				return nil
			}
			report.recordOutcome(res.Outcome)
			return nil
		})
	}
	_ = g.Wait()

	report.sortFailures()
	report.Duration = time.Since(report.StartedAt)
	e.metrics.ObserveReload(report.Duration)

	e.logger.Info("Cache initialized",
		zap.Int("total", report.Total),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.Duration),
	)

	if e.sink != nil {
		e.sink.Record(ctx, report)
	}
	return report
}

// indexItem encodes and upserts one record.
func (e *Engine) indexItem(ctx context.Context, item models.Item) (index.Result, error) {
	doc, err := document.Encode(item)
	if err != nil {
		e.logger.Warn("Skipping record", zap.Int64("item_id", item.ID), zap.Error(err))
		e.metrics.ObserveDocument(metrics.DocumentSkipped)
		return index.Result{}, err
	}

	res, err := e.index.Upsert(ctx, doc)
	if err != nil {
		e.logger.Error("Failed to index item", zap.Int64("item_id", item.ID), zap.Error(err))
		e.metrics.ObserveDocument(metrics.DocumentFailed)
		return index.Result{}, err
	}

	e.logger.Debug("Item indexed",
		zap.String("id", res.ID),
		zap.String("outcome", string(res.Outcome)),
	)
	e.metrics.ObserveDocument(string(res.Outcome))
	return res, nil
}

// ApplyAdjustment decrements an item's stock by adj.Count and re-synchronizes the index.
// Unknown items are a no-op reported through Found. Stock is not clamped at zero.
// Only store failures are returned; index failures are logged per document.
func (e *Engine) ApplyAdjustment(ctx context.Context, adj models.StockAdjustment) (*AdjustmentResult, error) {
	unlock := e.items.Lock(adj.ItemID)
	defer unlock()

	l := e.logger.With(zap.Int64("item_id", adj.ItemID), zap.Int("count", adj.Count))

	exists, err := e.store.Exists(ctx, adj.ItemID)
	if err != nil {
		e.metrics.ObserveAdjustment(metrics.AdjustmentFailed)
		return nil, err
	}
	if !exists {
		l.Warn("Item does not exist")
		e.metrics.ObserveAdjustment(metrics.AdjustmentNotFound)
		return &AdjustmentResult{ItemID: adj.ItemID}, nil
	}

	item, err := e.store.FindByID(ctx, adj.ItemID)
	if err != nil {
		e.metrics.ObserveAdjustment(metrics.AdjustmentFailed)
		return nil, err
	}
	if item == nil {
		// Removed between the two reads
		l.Warn("Item does not exist")
		e.metrics.ObserveAdjustment(metrics.AdjustmentNotFound)
		return &AdjustmentResult{ItemID: adj.ItemID}, nil
	}

	result := &AdjustmentResult{
		ItemID:        item.ID,
		Found:         true,
		PreviousStock: item.Stock,
		NewStock:      item.Stock - adj.Count,
	}
	l.Info("Applying stock adjustment",
		zap.Int("current_stock", result.PreviousStock),
		zap.Int("new_stock", result.NewStock),
	)

	item.Stock = result.NewStock
	if err := e.store.Save(ctx, item); err != nil {
		e.metrics.ObserveAdjustment(metrics.AdjustmentFailed)
		return nil, fmt.Errorf("adjustment for item %d not applied: %w", item.ID, err)
	}
	e.metrics.ObserveAdjustment(metrics.AdjustmentApplied)

	if e.cfg.Mode == ModeTargeted {
		// A reload in flight may hold the pre-save row; let it land first.
		e.reloadMu.Lock()
		res, err := e.indexItem(ctx, *item)
		e.reloadMu.Unlock()
		if err != nil {
			result.Indexed = metrics.DocumentFailed
		} else {
			result.Indexed = string(res.Outcome)
		}
		return result, nil
	}

	result.Reload = e.InitializeCache(ctx)
	return result, nil
}
