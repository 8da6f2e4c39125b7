package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"webshoptech/szamlabridge/internal/core/invoice"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// Repository implements the invoice.RecordStore interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL invoice record repository.
func NewRepository(pool *pgxpool.Pool) invoice.RecordStore {
	return &Repository{pool: pool}
}

// Create persists the order-to-invoice mapping and returns its ID. The
// order_id unique constraint is the idempotency guard: a concurrent insert
// for the same order surfaces as ErrRecordExists.
func (r *Repository) Create(ctx context.Context, rec invoice.Record) (int64, error) {
	query := `
		INSERT INTO invoice_records (order_id, invoice_number, invoice_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, rec.OrderID, rec.InvoiceNumber, rec.InvoiceID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, invoice.ErrRecordExists
		}
		return 0, fmt.Errorf("create invoice record: %w", err)
	}

	return id, nil
}

// GetByOrderID retrieves the record for the given order.
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (*invoice.Record, error) {
	query := `
		SELECT id, order_id, invoice_number, invoice_id, created_at
		FROM invoice_records
		WHERE order_id = $1
	`

	return r.queryOne(ctx, query, orderID)
}

// GetByNumber retrieves the record for the given invoice number.
func (r *Repository) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Record, error) {
	query := `
		SELECT id, order_id, invoice_number, invoice_id, created_at
		FROM invoice_records
		WHERE invoice_number = $1
	`

	return r.queryOne(ctx, query, invoiceNumber)
}

func (r *Repository) queryOne(ctx context.Context, query string, arg any) (*invoice.Record, error) {
	var rec invoice.Record
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rec.ID,
		&rec.OrderID,
		&rec.InvoiceNumber,
		&rec.InvoiceID,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrRecordNotFound
		}
		return nil, fmt.Errorf("query invoice record: %w", err)
	}

	return &rec, nil
}
