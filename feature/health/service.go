package health

import (
	"context"
	"time"

	"inventory-sync/core/database"
	"inventory-sync/core/index"
	"inventory-sync/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// Report is the combined health of the synchronizer's dependencies.
type Report struct {
	Status   string        `json:"status"`
	Database Component     `json:"database"`
	Index    Component     `json:"index"`
	Schema   *SchemaReport `json:"schema,omitempty"`
}

// Component is the health of a single dependency.
type Component struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Service runs health checks.
type Service struct {
	db      *gorm.DB
	index   index.Client
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a new health service.
func NewService(db *gorm.DB, client index.Client, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		index:   client,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Check probes the record store, its inventory schema and the index.
func (s *Service) Check(ctx context.Context) *Report {
	report := &Report{Status: StatusOK}

	if err := database.Ping(s.db, s.timeout); err != nil {
		report.Database = Component{Status: StatusError, Error: err.Error()}
	} else {
		report.Database = Component{Status: StatusOK}

		schema, err := CheckSchema(s.db, models.Item{})
		if err != nil {
			schema = &SchemaReport{Error: err.Error()}
		}
		report.Schema = schema
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.index.Ping(ctx); err != nil {
		report.Index = Component{Status: StatusError, Error: err.Error()}
	} else {
		report.Index = Component{Status: StatusOK}
	}

	if report.Database.Status != StatusOK || report.Index.Status != StatusOK ||
		report.Schema == nil || !report.Schema.Matched {
		report.Status = StatusDegraded
	}
	return report
}
