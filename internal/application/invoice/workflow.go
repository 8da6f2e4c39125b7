package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	corebuyer "webshoptech/szamlabridge/internal/core/buyer"
	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	"webshoptech/szamlabridge/internal/core/order"
)

// BuyerResolver produces the invoice buyer for an order's billing data.
type BuyerResolver interface {
	Resolve(ctx context.Context, billing order.BillingAddress, vatNumber string) corebuyer.Resolution
}

// Workflow runs the order-to-invoice submission sequence: credential check,
// idempotency check, buyer resolution, composition, remote submission and
// record persistence. Invoice generation is a side effect of order
// creation, never a precondition: no failure here reaches the order
// pipeline.
type Workflow struct {
	creds    coreinvoice.CredentialSource
	store    coreinvoice.RecordStore
	resolver BuyerResolver
	composer *Composer
	provider coreinvoice.Provider
	log      *slog.Logger
}

// NewWorkflow creates the submission workflow.
func NewWorkflow(creds coreinvoice.CredentialSource, store coreinvoice.RecordStore, resolver BuyerResolver, composer *Composer, provider coreinvoice.Provider, log *slog.Logger) *Workflow {
	return &Workflow{
		creds:    creds,
		store:    store,
		resolver: resolver,
		composer: composer,
		provider: provider,
		log:      log,
	}
}

// HandleOrderFinalized runs the workflow for a finalized order. Failures
// are terminal for the invoicing side effect only: they are logged with the
// order id and swallowed.
func (w *Workflow) HandleOrderFinalized(ctx context.Context, ord order.Order) {
	log := w.log.With("run_id", uuid.NewString(), "order_id", orderRef(ord))
	if err := w.run(ctx, ord, log); err != nil {
		log.Error("invoice generation failed", "error", err)
	}
}

func (w *Workflow) run(ctx context.Context, ord order.Order, log *slog.Logger) error {
	if w.creds.AgentKey() == "" {
		return coreinvoice.ErrAPIKeyMissing
	}

	existing, err := w.store.GetByOrderID(ctx, ord.ID)
	switch {
	case err == nil:
		log.Info("invoice already exists for order, skipping",
			"invoice_number", existing.InvoiceNumber,
		)
		return nil
	case !errors.Is(err, coreinvoice.ErrRecordNotFound):
		return fmt.Errorf("idempotency check: %w", err)
	}

	if ord.Billing == nil {
		return coreinvoice.ErrMissingBillingAddress
	}

	res := w.resolver.Resolve(ctx, *ord.Billing, ord.VATNumber)
	if !res.Enriched && ord.VATNumber != "" {
		log.Warn("buyer enrichment degraded to billing defaults",
			"reason", res.DegradeReason,
		)
	}

	inv, err := w.composer.Compose(ord, res.Buyer)
	if err != nil {
		return err
	}

	result, err := w.provider.Submit(ctx, inv)
	if err != nil {
		return err
	}

	rec := coreinvoice.Record{
		OrderID:       ord.ID,
		InvoiceNumber: result.InvoiceNumber,
	}
	if result.InvoiceID != "" {
		id := result.InvoiceID
		rec.InvoiceID = &id
	}

	if _, err := w.store.Create(ctx, rec); err != nil {
		if errors.Is(err, coreinvoice.ErrRecordExists) {
			// A concurrent trigger won the insert; the unique constraint is
			// the authoritative at-most-once guard.
			log.Warn("invoice record already created by a concurrent trigger",
				"invoice_number", result.InvoiceNumber,
			)
			return nil
		}
		return fmt.Errorf("persist invoice record: %w", err)
	}

	log.Info("invoice created", "invoice_number", result.InvoiceNumber)
	return nil
}

func orderRef(ord order.Order) string {
	if ord.ID == 0 {
		return "unknown"
	}
	return strconv.FormatInt(ord.ID, 10)
}
