package invoice

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
)

// invoiceNumberPattern restricts invoice numbers to the safe character
// class before any lookup. Untrusted input never reaches the store
// unvalidated.
var invoiceNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ErrInvalidInvoiceNumber is returned for invoice numbers outside the
// allowed character class.
var ErrInvalidInvoiceNumber = errors.New("invoice number contains invalid characters")

// Retrieval serves on-demand invoice document downloads.
type Retrieval struct {
	creds    coreinvoice.CredentialSource
	store    coreinvoice.RecordStore
	provider coreinvoice.Provider
	log      *slog.Logger
}

// NewRetrieval creates the retrieval service.
func NewRetrieval(creds coreinvoice.CredentialSource, store coreinvoice.RecordStore, provider coreinvoice.Provider, log *slog.Logger) *Retrieval {
	return &Retrieval{
		creds:    creds,
		store:    store,
		provider: provider,
		log:      log,
	}
}

// Download returns the PDF bytes for a stored invoice number. Errors:
// ErrInvalidInvoiceNumber, coreinvoice.ErrAPIKeyMissing,
// coreinvoice.ErrRecordNotFound, *coreinvoice.UpstreamError, or a transport
// failure.
func (r *Retrieval) Download(ctx context.Context, invoiceNumber string) ([]byte, error) {
	if !invoiceNumberPattern.MatchString(invoiceNumber) {
		return nil, ErrInvalidInvoiceNumber
	}

	if r.creds.AgentKey() == "" {
		return nil, coreinvoice.ErrAPIKeyMissing
	}

	if _, err := r.store.GetByNumber(ctx, invoiceNumber); err != nil {
		return nil, err
	}

	pdf, err := r.provider.FetchDocument(ctx, invoiceNumber)
	if err != nil {
		r.log.Warn("invoice document fetch failed",
			"invoice_number", invoiceNumber,
			"error", err,
		)
		return nil, err
	}

	return pdf, nil
}
