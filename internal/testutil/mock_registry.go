package testutil

import (
	"context"

	"webshoptech/szamlabridge/internal/core/taxregistry"
)

// MockTaxRegistry is a mock implementation of taxregistry.Service for
// testing.
type MockTaxRegistry struct {
	LookupTaxpayerFunc func(ctx context.Context, vatNumber string) (*taxregistry.TaxpayerRecord, error)

	LookupCalls int
}

// LookupTaxpayer calls the mock function if set, otherwise returns an empty
// record.
func (m *MockTaxRegistry) LookupTaxpayer(ctx context.Context, vatNumber string) (*taxregistry.TaxpayerRecord, error) {
	m.LookupCalls++
	if m.LookupTaxpayerFunc != nil {
		return m.LookupTaxpayerFunc(ctx, vatNumber)
	}
	return &taxregistry.TaxpayerRecord{}, nil
}

// Ensure MockTaxRegistry implements taxregistry.Service interface.
var _ taxregistry.Service = (*MockTaxRegistry)(nil)
