package buyer

// Buyer is the customer block submitted with an invoice. Name, Postcode,
// City and Address are always populated (defaulted from the billing
// address); VATID and Email are set only when available.
type Buyer struct {
	Name     string
	Postcode string
	City     string
	Address  string
	VATID    string
	Email    string
}

// Resolution reports how the Buyer was produced: enriched from the tax
// registry, or defaulted to billing-address data together with the reason
// the enrichment was skipped or failed. A degraded resolution is not an
// error; an invoice is still produced from the defaults.
type Resolution struct {
	Buyer         Buyer
	Enriched      bool
	DegradeReason string
}
