package inventory

import (
	"context"
	"sync"
	"testing"

	"inventory-sync/core/database"
	"inventory-sync/core/idempotency"
	"inventory-sync/core/index"
	"inventory-sync/core/index/mocks"
	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/store"
	"inventory-sync/feature/inventory/syncer"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memGuard is an in-memory idempotency.Guard.
type memGuard struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func newMemGuard() *memGuard {
	return &memGuard{keys: map[string]bool{}}
}

func (g *memGuard) Acquire(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *memGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}

var _ idempotency.Guard = (*memGuard)(nil)

func seedStore(t *testing.T) *store.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}))
	for _, item := range []models.Item{
		{ID: 1, Name: "bolt", SKU: "B-1", Stock: 100},
		{ID: 2, Name: "nut", SKU: "N-2", Stock: 50},
		{ID: 42, Name: "widget", SKU: "W-42", Stock: 10},
	} {
		require.NoError(t, db.Create(&item).Error)
	}
	return store.NewGormStore(db)
}

func newIndexMock() *mocks.Client {
	client := new(mocks.Client)
	client.On("Upsert", mock.Anything, mock.Anything).
		Return(index.Result{ID: "1", Outcome: index.OutcomeUpdated}, nil)
	return client
}

func setupService(t *testing.T, s store.Store, guard idempotency.Guard) (*Service, *mocks.Client) {
	t.Helper()
	client := newIndexMock()
	engine := syncer.NewEngine(s, client, zap.NewNop(), syncer.Config{Mode: syncer.ModeFull, Workers: 2})
	return NewService(engine, s, guard, nil, zap.NewNop()), client
}
