package buyer

import (
	"context"
	"fmt"
	"log/slog"

	corebuyer "webshoptech/szamlabridge/internal/core/buyer"
	"webshoptech/szamlabridge/internal/core/order"
	"webshoptech/szamlabridge/internal/core/taxregistry"
)

// Resolver builds the canonical invoice buyer from checkout billing data,
// enriched by a tax-registry lookup when the order carries a VAT number.
type Resolver struct {
	registry taxregistry.Service
	log      *slog.Logger
}

// NewResolver creates a buyer resolver. registry may be nil when no tax
// registry is configured; resolution then always uses billing defaults.
func NewResolver(registry taxregistry.Service, log *slog.Logger) *Resolver {
	return &Resolver{registry: registry, log: log}
}

// Resolve produces the invoice buyer for the given billing address and
// optional VAT number. A failed or incomplete registry lookup never fails
// the resolution: the buyer keeps its billing-derived defaults and the
// degrade reason is carried in the result.
func (r *Resolver) Resolve(ctx context.Context, billing order.BillingAddress, vatNumber string) corebuyer.Resolution {
	b := corebuyer.Buyer{
		Name:     billing.Name,
		Postcode: billing.Postcode,
		City:     billing.City,
		Address:  composeBillingAddress(billing),
		Email:    billing.Meta.OtherData.Email,
	}

	if vatNumber == "" {
		return corebuyer.Resolution{Buyer: b, DegradeReason: "no vat number supplied"}
	}
	if r.registry == nil {
		return corebuyer.Resolution{Buyer: b, DegradeReason: "tax registry not configured"}
	}

	rec, err := r.registry.LookupTaxpayer(ctx, vatNumber)
	if err != nil {
		r.log.Warn("taxpayer lookup failed, using billing defaults",
			"vat_number", vatNumber,
			"error", err,
		)
		return corebuyer.Resolution{Buyer: b, DegradeReason: fmt.Sprintf("taxpayer lookup failed: %v", err)}
	}

	// Overwrite only the fields the registry actually returned. The short
	// legal name wins over the full legal name.
	switch {
	case rec.ShortName != "":
		b.Name = rec.ShortName
	case rec.FullName != "":
		b.Name = rec.FullName
	}
	if rec.PostalCode != "" {
		b.Postcode = rec.PostalCode
	}
	if rec.City != "" {
		b.City = rec.City
	}
	if addr := rec.StreetAddress(); addr != "" {
		b.Address = addr
	}
	if id, ok := rec.VATIdentifier(); ok {
		b.VATID = id
	}

	return corebuyer.Resolution{Buyer: b, Enriched: true}
}

// composeBillingAddress concatenates address line 1 and, when present,
// address line 2 with a separating space.
func composeBillingAddress(billing order.BillingAddress) string {
	if billing.Address2 == "" {
		return billing.Address1
	}
	return billing.Address1 + " " + billing.Address2
}
