package taxregistry

import (
	"context"
	"fmt"
	"strings"
)

// TaxpayerRecord is the legal-identity data returned by the national tax
// registry for a VAT number. Every field is optional; callers must only use
// the fields that were actually returned.
type TaxpayerRecord struct {
	ShortName           string
	FullName            string
	PostalCode          string
	City                string
	StreetName          string
	PublicPlaceCategory string
	HouseNumber         string
	Door                string
	TaxpayerID          string
	VATCode             string
	CountyCode          string
}

// VATIdentifier composes the hyphenated tax number in the
// taxpayerId-vatCode-countyCode format. The identifier exists only when all
// three components are present; ok is false otherwise.
func (r TaxpayerRecord) VATIdentifier() (string, bool) {
	if r.TaxpayerID == "" || r.VATCode == "" || r.CountyCode == "" {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", r.TaxpayerID, r.VATCode, r.CountyCode), true
}

// StreetAddress joins the structured street parts with single spaces,
// skipping missing parts. Returns "" when no street name was returned,
// which callers treat as "keep the billing-derived address".
func (r TaxpayerRecord) StreetAddress() string {
	if r.StreetName == "" {
		return ""
	}
	parts := []string{r.StreetName}
	for _, p := range []string{r.PublicPlaceCategory, r.HouseNumber, r.Door} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Service queries a national tax registry by VAT number.
type Service interface {
	// LookupTaxpayer returns the taxpayer record for the given VAT number.
	// Returns an error if the registry is unavailable, the response cannot
	// be parsed, or the taxpayer is unknown.
	LookupTaxpayer(ctx context.Context, vatNumber string) (*TaxpayerRecord, error)
}
