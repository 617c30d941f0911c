package syncer

import (
	"sort"
	"time"

	"inventory-sync/core/index"
)

// ReloadReport summarizes one full reload. A reload never fails as a whole;
// per-document problems are counted here instead.
type ReloadReport struct {
	// StartedAt is when the reload began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the reload took.
	Duration time.Duration `json:"duration_ns"`

	// Total is the number of records read from the store.
	Total int `json:"total"`

	// Created counts documents the index reported as new.
	Created int `json:"created"`

	// Updated counts documents the index reported as overwritten.
	Updated int `json:"updated"`

	// Failed counts documents whose upsert returned an error.
	Failed int `json:"failed"`

	// Skipped counts records that could not be encoded.
	Skipped int `json:"skipped"`

	// StoreError is set when the record fetch failed and the reload ran on an empty set.
	StoreError string `json:"store_error,omitempty"`

	// Failures lists failed and skipped records ordered by id.
	Failures []DocumentFailure `json:"failures,omitempty"`
}

// DocumentFailure describes a record that did not reach the index.
type DocumentFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// Indexed returns the number of documents acknowledged by the index.
func (r *ReloadReport) Indexed() int {
	return r.Created + r.Updated
}

func (r *ReloadReport) recordOutcome(outcome index.Outcome) {
	if outcome == index.OutcomeCreated {
		r.Created++
	} else {
		r.Updated++
	}
}

func (r *ReloadReport) recordFailure(id int64, err error, skipped bool) {
	if skipped {
		r.Skipped++
	} else {
		r.Failed++
	}
	r.Failures = append(r.Failures, DocumentFailure{ID: id, Error: err.Error()})
}

func (r *ReloadReport) sortFailures() {
	sort.Slice(r.Failures, func(i, j int) bool {
		return r.Failures[i].ID < r.Failures[j].ID
	})
}

// AdjustmentResult describes the effect of one stock adjustment.
type AdjustmentResult struct {
	// ItemID is the adjusted record.
	ItemID int64 `json:"item_id"`

	// Found is false when no record exists; nothing was changed.
	Found bool `json:"found"`

	// PreviousStock is the stock read before the adjustment.
	PreviousStock int `json:"previous_stock"`

	// NewStock is the persisted stock. It may be negative.
	NewStock int `json:"new_stock"`

	// Reload is the report of the follow-up full reload (full mode).
	Reload *ReloadReport `json:"reload,omitempty"`

	// Indexed is the single-document outcome (targeted mode), or "failed".
	Indexed string `json:"indexed,omitempty"`
}
