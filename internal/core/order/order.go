package order

// BillingAddress is the billing contact attached to a finalized order.
// Meta carries free-form checkout metadata; only the nested email is
// consumed by the invoicing workflow.
type BillingAddress struct {
	Name     string `json:"name"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
	Address1 string `json:"address_1"`
	Address2 string `json:"address_2,omitempty"`
	Meta     Meta   `json:"meta"`
}

// Meta is the parsed billing metadata blob.
type Meta struct {
	OtherData OtherData `json:"other_data"`
}

// OtherData holds the optional fields nested under the billing metadata.
type OtherData struct {
	Email string `json:"email,omitempty"`
}

// Item is a single order line. All monetary fields are integers in minor
// currency units (e.g. cents).
type Item struct {
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"`
	TaxAmount int64  `json:"tax_amount"`
	LineTotal int64  `json:"line_total"`
	Quantity  int64  `json:"quantity"`
}

// Order is the read-only snapshot of a finalized order as delivered by the
// order pipeline. VATNumber comes from the checkout tax data and may be
// empty.
type Order struct {
	ID        int64           `json:"id"`
	Billing   *BillingAddress `json:"billing_address"`
	VATNumber string          `json:"vat_number,omitempty"`
	Items     []Item          `json:"items"`
}
