package invoice

import (
	"context"
	"errors"
	"time"
)

// Record maps a local order to the invoice generated for it. Records are
// created exactly once per order right after a successful submission and are
// never updated or deleted.
type Record struct {
	ID            int64
	OrderID       int64
	InvoiceNumber string
	InvoiceID     *string
	CreatedAt     time.Time
}

var (
	// ErrRecordExists is returned by Create when a record for the order
	// already exists.
	ErrRecordExists = errors.New("invoice record already exists for order")
	// ErrRecordNotFound is returned when no record matches the lookup.
	ErrRecordNotFound = errors.New("invoice record not found")
)

// RecordStore persists order-to-invoice mappings. Create must enforce the
// order-id uniqueness itself and report ErrRecordExists on conflict: under
// concurrent triggers for the same order, the insert is the safeguard, not
// the prior read.
type RecordStore interface {
	Create(ctx context.Context, rec Record) (int64, error)
	GetByOrderID(ctx context.Context, orderID int64) (*Record, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Record, error)
}
