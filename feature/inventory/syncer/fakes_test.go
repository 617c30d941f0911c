package syncer

import (
	"context"
	"errors"
	"sync"

	"inventory-sync/core/index"
	"inventory-sync/feature/inventory/document"
	"inventory-sync/feature/inventory/models"
)

// memStore is an in-memory store.Store.
type memStore struct {
	mu        sync.Mutex
	items     map[int64]models.Item
	findAllFn func() error
	saveErr   error
	saves     int
}

func newMemStore(items ...models.Item) *memStore {
	s := &memStore{items: map[int64]models.Item{}}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *memStore) FindAll(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findAllFn != nil {
		if err := s.findAllFn(); err != nil {
			return nil, err
		}
	}
	items := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *memStore) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *memStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *memStore) Save(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.items[item.ID] = *item
	return nil
}

func (s *memStore) get(id int64) models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

// memIndex is an in-memory index.Client keyed by document id.
type memIndex struct {
	mu       sync.Mutex
	docs     map[int64]map[string]any
	failIDs  map[int64]bool
	attempts []int64
}

func newMemIndex() *memIndex {
	return &memIndex{docs: map[int64]map[string]any{}, failIDs: map[int64]bool{}}
}

func (m *memIndex) Upsert(ctx context.Context, doc index.Document) (index.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, doc.ID)
	if m.failIDs[doc.ID] {
		return index.Result{}, errors.New("index unavailable")
	}
	_, existed := m.docs[doc.ID]
	m.docs[doc.ID] = doc.Fields
	outcome := index.OutcomeCreated
	if existed {
		outcome = index.OutcomeUpdated
	}
	return index.Result{ID: "doc", Outcome: outcome}, nil
}

func (m *memIndex) Ping(ctx context.Context) error {
	return nil
}

func (m *memIndex) doc(id int64) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id]
}

func (m *memIndex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *memIndex) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

func fieldsOf(item models.Item) map[string]any {
	doc, err := document.Encode(item)
	if err != nil {
		panic(err)
	}
	return doc.Fields
}
