package testutil

import (
	"context"

	"webshoptech/szamlabridge/internal/core/invoice"
)

// MockProvider is a mock implementation of invoice.Provider for testing.
type MockProvider struct {
	SubmitFunc        func(ctx context.Context, inv invoice.Invoice) (invoice.SubmitResult, error)
	FetchDocumentFunc func(ctx context.Context, invoiceNumber string) ([]byte, error)

	SubmitCalls        int
	FetchDocumentCalls int
}

// Submit calls the mock function if set, otherwise returns an empty result.
func (m *MockProvider) Submit(ctx context.Context, inv invoice.Invoice) (invoice.SubmitResult, error) {
	m.SubmitCalls++
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, inv)
	}
	return invoice.SubmitResult{}, nil
}

// FetchDocument calls the mock function if set, otherwise returns nil bytes.
func (m *MockProvider) FetchDocument(ctx context.Context, invoiceNumber string) ([]byte, error) {
	m.FetchDocumentCalls++
	if m.FetchDocumentFunc != nil {
		return m.FetchDocumentFunc(ctx, invoiceNumber)
	}
	return nil, nil
}

// Ensure MockProvider implements invoice.Provider interface.
var _ invoice.Provider = (*MockProvider)(nil)

// Credentials is a fixed credential source for testing.
type Credentials struct {
	Key string
}

// AgentKey returns the fixed key.
func (c Credentials) AgentKey() string {
	return c.Key
}

// Ensure Credentials implements invoice.CredentialSource interface.
var _ invoice.CredentialSource = Credentials{}
