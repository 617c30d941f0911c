package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"inventory-sync/core/events"
	"inventory-sync/core/idempotency"
	"inventory-sync/core/metrics"
	"inventory-sync/core/utils"
	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/store"
	"inventory-sync/feature/inventory/syncer"

	"go.uber.org/zap"
)

var (
	// ErrInvalidAdjustment is returned for payloads without a usable itemId or count.
	ErrInvalidAdjustment = errors.New("invalid adjustment")
	// ErrDuplicateEvent is returned when an event key was already applied.
	ErrDuplicateEvent = errors.New("duplicate event")
)

// Service routes stock movement events from every source into the engine.
type Service struct {
	engine  *syncer.Engine
	store   store.Store
	guard   idempotency.Guard
	metrics *metrics.SyncMetrics
	logger  *zap.Logger
}

// NewService creates a new inventory service. A nil guard admits every event.
func NewService(engine *syncer.Engine, s store.Store, guard idempotency.Guard, m *metrics.SyncMetrics, logger *zap.Logger) *Service {
	if guard == nil {
		guard = idempotency.NopGuard{}
	}
	return &Service{
		engine:  engine,
		store:   s,
		guard:   guard,
		metrics: m,
		logger:  logger,
	}
}

// Adjust applies one adjustment once per key. Events without a key are always applied.
func (s *Service) Adjust(ctx context.Context, adj models.StockAdjustment) (*syncer.AdjustmentResult, error) {
	if adj.Key != "" {
		ok, err := s.guard.Acquire(ctx, adj.Key)
		if err != nil {
			// Redis being down must not stop stock movements
			s.logger.Warn("Event de-duplication unavailable", zap.String("key", adj.Key), zap.Error(err))
		} else if !ok {
			s.metrics.ObserveAdjustment(metrics.AdjustmentDuplicate)
			return nil, ErrDuplicateEvent
		}
	}

	res, err := s.engine.ApplyAdjustment(ctx, adj)
	if err != nil && adj.Key != "" {
		if relErr := s.guard.Release(ctx, adj.Key); relErr != nil {
			s.logger.Warn("Failed to release event key", zap.String("key", adj.Key), zap.Error(relErr))
		}
	}
	return res, err
}

// Reload runs a full reload.
func (s *Service) Reload(ctx context.Context) *syncer.ReloadReport {
	return s.engine.InitializeCache(ctx)
}

// GetItem returns the stored record or nil.
func (s *Service) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return s.store.FindByID(ctx, id)
}

// HandleMessage is the events.Handler for the stock movement topic.
// Malformed payloads are permanent failures; store failures are returned so
// the consumer retries them.
func (s *Service) HandleMessage(ctx context.Context, msg events.Message) error {
	adj, err := DecodeAdjustment(msg.Value)
	if err != nil {
		return events.Permanent(err)
	}
	adj.Key = msg.Key

	res, err := s.Adjust(ctx, adj)
	if errors.Is(err, ErrDuplicateEvent) {
		s.logger.Info("Skipping duplicate event", zap.String("key", msg.Key))
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Debug("Event applied",
		zap.String("key", msg.Key),
		zap.Int64("item_id", res.ItemID),
		zap.Bool("found", res.Found))
	return nil
}

// DecodeAdjustment parses {"itemId":..,"count":..}. Both fields accept JSON
// numbers or numeric strings.
func DecodeAdjustment(data []byte) (models.StockAdjustment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return models.StockAdjustment{}, fmt.Errorf("%w: %v", ErrInvalidAdjustment, err)
	}

	id, ok := utils.ToInt64(raw["itemId"])
	if !ok {
		return models.StockAdjustment{}, fmt.Errorf("%w: itemId %q is not an integer", ErrInvalidAdjustment, utils.ToString(raw["itemId"]))
	}

	count, ok := utils.ToInt64(raw["count"])
	if !ok || count > math.MaxInt32 || count < math.MinInt32 {
		return models.StockAdjustment{}, fmt.Errorf("%w: count %q is not an integer", ErrInvalidAdjustment, utils.ToString(raw["count"]))
	}

	return models.StockAdjustment{ItemID: id, Count: int(count)}, nil
}
