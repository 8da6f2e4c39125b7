package invoice

import (
	"github.com/shopspring/decimal"

	"webshoptech/szamlabridge/internal/core/buyer"
	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	"webshoptech/szamlabridge/internal/core/order"
)

// DefaultMinorUnitScale is the number of minor currency units per major
// unit used by the provider (cents per unit).
const DefaultMinorUnitScale = 100

// Composer maps order items, priced in minor currency units, into invoice
// lines with net/VAT/gross amounts in major units.
type Composer struct {
	scale decimal.Decimal
}

// NewComposer creates a composer with the given minor-unit scale. A scale
// of zero or less falls back to DefaultMinorUnitScale.
func NewComposer(scale int64) *Composer {
	if scale <= 0 {
		scale = DefaultMinorUnitScale
	}
	return &Composer{scale: decimal.NewFromInt(scale)}
}

// Compose builds the invoice for the given order and resolved buyer.
// Per item: net = unit_price/scale, vat = tax_amount/quantity/scale (the
// line tax split evenly across the quantity), gross = line_total/scale + vat.
// Fails with ErrEmptyOrder when the order has no items.
func (c *Composer) Compose(ord order.Order, b buyer.Buyer) (coreinvoice.Invoice, error) {
	if len(ord.Items) == 0 {
		return coreinvoice.Invoice{}, coreinvoice.ErrEmptyOrder
	}

	lines := make([]coreinvoice.Line, 0, len(ord.Items))
	for _, item := range ord.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		net := decimal.NewFromInt(item.UnitPrice).Div(c.scale)
		vat := decimal.NewFromInt(item.TaxAmount).Div(decimal.NewFromInt(qty)).Div(c.scale)
		gross := decimal.NewFromInt(item.LineTotal).Div(c.scale).Add(vat)

		lines = append(lines, coreinvoice.Line{
			Description: item.Title,
			Net:         net,
			VAT:         vat,
			Gross:       gross,
		})
	}

	return coreinvoice.Invoice{
		Type:  coreinvoice.TypeInvoice,
		Buyer: b,
		Lines: lines,
	}, nil
}
