package mocks

import (
	"context"

	"inventory-sync/core/index"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of index.Client
type Client struct {
	mock.Mock
}

func (m *Client) Upsert(ctx context.Context, doc index.Document) (index.Result, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(index.Result), args.Error(1)
}

func (m *Client) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
