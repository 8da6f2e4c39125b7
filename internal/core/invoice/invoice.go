package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"webshoptech/szamlabridge/internal/core/buyer"
)

// Type marks the kind of document requested from the provider.
type Type string

const (
	// TypeInvoice is a normal invoice. The submission workflow always uses
	// this type.
	TypeInvoice Type = "invoice"
	// TypeProforma is a proforma invoice (payment request).
	TypeProforma Type = "proforma"
)

// Line is one composed invoice line. Amounts are in major currency units,
// already converted down from the order's minor-unit integers.
type Line struct {
	Description string
	Net         decimal.Decimal
	VAT         decimal.Decimal
	Gross       decimal.Decimal
}

// Invoice is the document submitted to the invoicing provider.
type Invoice struct {
	Type  Type
	Buyer buyer.Buyer
	Lines []Line
}

// SubmitResult carries the provider's answer for a generated invoice.
// InvoiceID is the provider-internal identifier and may be empty.
type SubmitResult struct {
	InvoiceNumber string
	InvoiceID     string
}

// Provider is the outbound port to the invoicing service.
type Provider interface {
	// Submit sends a composed invoice for generation. A provider-reported
	// rejection is returned as a *SubmissionError; any other error is a
	// transport or protocol failure.
	Submit(ctx context.Context, inv Invoice) (SubmitResult, error)
	// FetchDocument retrieves the PDF for a previously generated invoice.
	// A provider-reported failure is returned as an *UpstreamError.
	FetchDocument(ctx context.Context, invoiceNumber string) ([]byte, error)
}

// CredentialSource yields the provider credential at call time, so a key
// rotated in settings takes effect without a restart.
type CredentialSource interface {
	AgentKey() string
}

var (
	// ErrEmptyOrder is returned when an order has no items to invoice.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrMissingBillingAddress is returned when an order carries no billing
	// address.
	ErrMissingBillingAddress = errors.New("order has no billing address")
	// ErrAPIKeyMissing is returned when the agent API key is not configured.
	ErrAPIKeyMissing = errors.New("agent api key is not configured")
)

// SubmissionError reports a provider-side rejection of an invoice
// generation request.
type SubmissionError struct {
	Code    string
	Message string
}

func (e *SubmissionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("invoice submission rejected (code %s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("invoice submission rejected: %s", e.Message)
}

// UpstreamError reports a provider-side failure while fetching a document.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider document fetch failed: %s", e.Message)
}
