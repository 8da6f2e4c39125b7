package testutil

import (
	"context"

	"webshoptech/szamlabridge/internal/core/invoice"
)

// MockRecordStore is a mock implementation of invoice.RecordStore for
// testing. Lookups report ErrRecordNotFound unless overridden, so the
// zero value behaves like an empty store.
type MockRecordStore struct {
	CreateFunc       func(ctx context.Context, rec invoice.Record) (int64, error)
	GetByOrderIDFunc func(ctx context.Context, orderID int64) (*invoice.Record, error)
	GetByNumberFunc  func(ctx context.Context, invoiceNumber string) (*invoice.Record, error)

	CreateCalls int
	Created     []invoice.Record
}

// Create calls the mock function if set, otherwise records the insert and
// returns a fixed ID.
func (m *MockRecordStore) Create(ctx context.Context, rec invoice.Record) (int64, error) {
	m.CreateCalls++
	m.Created = append(m.Created, rec)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return int64(len(m.Created)), nil
}

// GetByOrderID calls the mock function if set, otherwise reports not found.
func (m *MockRecordStore) GetByOrderID(ctx context.Context, orderID int64) (*invoice.Record, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, invoice.ErrRecordNotFound
}

// GetByNumber calls the mock function if set, otherwise reports not found.
func (m *MockRecordStore) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Record, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, invoiceNumber)
	}
	return nil, invoice.ErrRecordNotFound
}

// Ensure MockRecordStore implements invoice.RecordStore interface.
var _ invoice.RecordStore = (*MockRecordStore)(nil)
