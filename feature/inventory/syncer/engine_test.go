package syncer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"inventory-sync/core/index"
	"inventory-sync/core/index/mocks"
	"inventory-sync/core/metrics"
	"inventory-sync/feature/inventory/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var sampleItems = []models.Item{
	{ID: 1, Name: "bolt", SKU: "B-1", Stock: 100},
	{ID: 2, Name: "nut", SKU: "N-2", Stock: 50},
	{ID: 42, Name: "widget", SKU: "W-42", Stock: 10},
}

func newTestEngine(s *memStore, idx index.Client, cfg Config, opts ...Option) *Engine {
	return NewEngine(s, idx, zap.NewNop(), cfg, opts...)
}

func TestInitializeCache_Completeness(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Workers: 4})

	report := e.InitializeCache(context.Background())

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Created)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.StoreError)
	require.Equal(t, 3, idx.size())
	for _, item := range sampleItems {
		assert.Equal(t, fieldsOf(item), idx.doc(item.ID))
	}
}

func TestInitializeCache_Idempotent(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Workers: 2})

	first := e.InitializeCache(context.Background())
	second := e.InitializeCache(context.Background())

	assert.Equal(t, 3, first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Updated)
	assert.Equal(t, 3, idx.size())
}

func TestInitializeCache_PartialFailure(t *testing.T) {
	s := newMemStore(sampleItems...)
	client := new(mocks.Client)
	client.On("Upsert", mock.Anything, mock.MatchedBy(func(d index.Document) bool { return d.ID == 1 })).
		Return(index.Result{ID: "1", Outcome: index.OutcomeCreated}, nil).Once()
	client.On("Upsert", mock.Anything, mock.MatchedBy(func(d index.Document) bool { return d.ID == 2 })).
		Return(index.Result{}, errors.New("connection refused")).Once()
	client.On("Upsert", mock.Anything, mock.MatchedBy(func(d index.Document) bool { return d.ID == 42 })).
		Return(index.Result{ID: "42", Outcome: index.OutcomeUpdated}, nil).Once()

	e := newTestEngine(s, client, Config{Workers: 1})
	report := e.InitializeCache(context.Background())

	client.AssertExpectations(t)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, DocumentFailure{ID: 2, Error: "connection refused"}, report.Failures[0])
}

func TestInitializeCache_EveryDocumentFails(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	for _, item := range sampleItems {
		idx.failIDs[item.ID] = true
	}
	e := newTestEngine(s, idx, Config{Workers: 3})

	report := e.InitializeCache(context.Background())

	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 3, idx.attemptCount())
	assert.Equal(t, []int64{1, 2, 42}, []int64{report.Failures[0].ID, report.Failures[1].ID, report.Failures[2].ID})
}

func TestInitializeCache_StoreReadFailure(t *testing.T) {
	s := newMemStore(sampleItems...)
	s.findAllFn = func() error { return errors.New("db down") }
	idx := newMemIndex()
	idx.docs[1] = map[string]any{"stale": true}

	e := newTestEngine(s, idx, Config{})
	report := e.InitializeCache(context.Background())

	assert.Equal(t, "db down", report.StoreError)
	assert.Zero(t, report.Total)
	assert.Zero(t, idx.attemptCount())
	assert.Equal(t, map[string]any{"stale": true}, idx.doc(1), "index must be left stale, not cleared")
}

func TestInitializeCache_SkipsMalformedRecords(t *testing.T) {
	s := newMemStore(models.Item{ID: 0, Name: "ghost"}, models.Item{ID: 3, Stock: 1})
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Workers: 2})

	report := e.InitializeCache(context.Background())

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, idx.size())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, int64(0), report.Failures[0].ID)
}

func TestApplyAdjustment_Consistency(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Mode: ModeFull, Workers: 2})
	e.InitializeCache(context.Background())

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 3})
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, 10, res.PreviousStock)
	assert.Equal(t, 7, res.NewStock)
	require.NotNil(t, res.Reload)
	assert.Equal(t, 3, res.Reload.Updated)

	assert.Equal(t, 7, s.get(42).Stock)
	assert.Equal(t, 7, idx.doc(42)["stock"])
}

func TestApplyAdjustment_UnknownItem(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	core, logs := observer.New(zapcore.WarnLevel)
	e := NewEngine(s, idx, zap.New(core), Config{})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 999, Count: 5})
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Nil(t, res.Reload)
	assert.Zero(t, s.saves)
	assert.Zero(t, idx.attemptCount())
	assert.Equal(t, 1, logs.FilterMessage("Item does not exist").Len())
}

func TestApplyAdjustment_NegativeStockIsNotClamped(t *testing.T) {
	s := newMemStore(models.Item{ID: 1, Stock: 2})
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 1, Count: 5})
	require.NoError(t, err)

	assert.Equal(t, -3, res.NewStock)
	assert.Equal(t, -3, s.get(1).Stock)
	assert.Equal(t, -3, idx.doc(1)["stock"])
}

func TestApplyAdjustment_NegativeCountIncreasesStock(t *testing.T) {
	s := newMemStore(models.Item{ID: 1, Stock: 2})
	e := newTestEngine(s, newMemIndex(), Config{})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 1, Count: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, res.NewStock)
}

func TestApplyAdjustment_SaveFailure(t *testing.T) {
	s := newMemStore(sampleItems...)
	s.saveErr = errors.New("deadlock")
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 3})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, s.saveErr)
	assert.Equal(t, 10, s.get(42).Stock)
	assert.Zero(t, idx.attemptCount(), "no reload after a failed save")
}

func TestApplyAdjustment_IndexFailureKeepsStoreMutation(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	idx.failIDs[42] = true
	e := newTestEngine(s, idx, Config{})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 3})
	require.NoError(t, err)

	assert.Equal(t, 7, s.get(42).Stock)
	assert.Equal(t, 1, res.Reload.Failed)
	assert.Equal(t, 2, res.Reload.Created)
}

func TestApplyAdjustment_TargetedMode(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Mode: ModeTargeted})

	res, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 3})
	require.NoError(t, err)

	assert.Nil(t, res.Reload)
	assert.Equal(t, string(index.OutcomeCreated), res.Indexed)
	assert.Equal(t, []int64{42}, idx.attempts)
	assert.Equal(t, 7, idx.doc(42)["stock"])

	idx.failIDs[42] = true
	res, err = e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 1})
	require.NoError(t, err)
	assert.Equal(t, metrics.DocumentFailed, res.Indexed)
	assert.Equal(t, 6, s.get(42).Stock)
}

func TestApplyAdjustment_ConcurrentSameItem(t *testing.T) {
	s := newMemStore(models.Item{ID: 1, Stock: 100})
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{Mode: ModeTargeted})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 1, Count: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.get(1).Stock)
	assert.Zero(t, e.items.size())
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewSyncMetrics(reg)
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	idx.failIDs[2] = true
	e := newTestEngine(s, idx, Config{}, WithMetrics(m))

	_, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 1, Count: 1})
	require.NoError(t, err)
	_, err = e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 7, Count: 1})
	require.NoError(t, err)

	expected := `
# HELP inventory_sync_adjustments_total Stock adjustment events handled, by result
# TYPE inventory_sync_adjustments_total counter
inventory_sync_adjustments_total{result="applied"} 1
inventory_sync_adjustments_total{result="not_found"} 1
# HELP inventory_sync_documents_total Documents processed by full reloads, by outcome
# TYPE inventory_sync_documents_total counter
inventory_sync_documents_total{outcome="created"} 2
inventory_sync_documents_total{outcome="failed"} 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"inventory_sync_adjustments_total", "inventory_sync_documents_total")
	assert.NoError(t, err)
}

type recordingSink struct {
	mu      sync.Mutex
	reports []*ReloadReport
}

func (r *recordingSink) Record(ctx context.Context, report *ReloadReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

func TestEngine_ReportSink(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(newMemStore(sampleItems...), newMemIndex(), Config{}, WithReportSink(sink))

	report := e.InitializeCache(context.Background())

	require.Len(t, sink.reports, 1)
	assert.Same(t, report, sink.reports[0])
}

// gatedIndex pauses the first upsert of a document carrying staleStock until released.
type gatedIndex struct {
	*memIndex
	id         int64
	staleStock int
	reached    chan struct{}
	release    chan struct{}
	once       sync.Once
}

func (g *gatedIndex) Upsert(ctx context.Context, doc index.Document) (index.Result, error) {
	if doc.ID == g.id && doc.Fields["stock"] == g.staleStock {
		g.once.Do(func() {
			close(g.reached)
			<-g.release
		})
	}
	return g.memIndex.Upsert(ctx, doc)
}

func TestApplyAdjustment_TargetedDoesNotRaceReload(t *testing.T) {
	s := newMemStore(models.Item{ID: 42, Name: "widget", Stock: 10})
	idx := &gatedIndex{
		memIndex:   newMemIndex(),
		id:         42,
		staleStock: 10,
		reached:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	e := newTestEngine(s, idx, Config{Mode: ModeTargeted, Workers: 1})

	reloadDone := make(chan struct{})
	go func() {
		defer close(reloadDone)
		e.InitializeCache(context.Background())
	}()
	// The reload has read stock=10 and is about to write it
	<-idx.reached

	adjustDone := make(chan error, 1)
	go func() {
		_, err := e.ApplyAdjustment(context.Background(), models.StockAdjustment{ItemID: 42, Count: 3})
		adjustDone <- err
	}()
	assert.Eventually(t, func() bool { return s.get(42).Stock == 7 }, time.Second, time.Millisecond)

	close(idx.release)
	<-reloadDone
	require.NoError(t, <-adjustDone)

	assert.Equal(t, 7, s.get(42).Stock)
	assert.Equal(t, 7, idx.doc(42)["stock"], "stale reload snapshot must not land after the targeted upsert")
}
