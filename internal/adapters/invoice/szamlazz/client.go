package szamlazz

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	ctxutil "webshoptech/szamlabridge/internal/infrastructure/context"
)

const (
	invoicePath = "/szamla/agent/invoice"
	pdfPath     = "/szamla/agent/pdf"

	dateLayout = "2006-01-02"
)

// HTTPClient is the outbound transport dependency, satisfied by
// *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements the invoice.Provider port against the Számlázz.hu
// Agent API.
type Client struct {
	baseURL    string
	creds      coreinvoice.CredentialSource
	httpClient HTTPClient
	log        *slog.Logger
	now        func() time.Time
}

// NewClient creates a new Agent API client. The credential is read per
// call so key rotation in settings takes effect immediately.
func NewClient(baseURL string, creds coreinvoice.CredentialSource, httpClient HTTPClient, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: httpClient,
		log:        log,
		now:        time.Now,
	}
}

var _ coreinvoice.Provider = (*Client)(nil)

// Submit sends a composed invoice for generation and returns the document
// number assigned by the provider. A provider-reported rejection comes
// back as a *invoice.SubmissionError.
func (c *Client) Submit(ctx context.Context, inv coreinvoice.Invoice) (coreinvoice.SubmitResult, error) {
	today := c.now().Format(dateLayout)

	payload := xmlInvoiceRequest{
		Settings: xmlSettings{
			AgentKey:    c.creds.AgentKey(),
			EInvoice:    false,
			DownloadPDF: false,
		},
		Header: xmlHeader{
			IssueDate:       today,
			FulfillmentDate: today,
			PaymentDueDate:  today,
			Proforma:        inv.Type == coreinvoice.TypeProforma,
		},
		Buyer: xmlBuyer{
			Name:      inv.Buyer.Name,
			Postcode:  inv.Buyer.Postcode,
			City:      inv.Buyer.City,
			Address:   inv.Buyer.Address,
			Email:     inv.Buyer.Email,
			TaxNumber: inv.Buyer.VATID,
		},
	}

	for _, line := range inv.Lines {
		payload.Items = append(payload.Items, xmlItem{
			Description:  line.Description,
			Quantity:     "1",
			Unit:         "db",
			NetUnitPrice: line.Net.StringFixed(2),
			NetAmount:    line.Net.StringFixed(2),
			VATAmount:    line.VAT.StringFixed(2),
			GrossAmount:  line.Gross.StringFixed(2),
		})
	}

	body, err := c.post(ctx, invoicePath, payload)
	if err != nil {
		return coreinvoice.SubmitResult{}, err
	}

	var resp xmlInvoiceResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return coreinvoice.SubmitResult{}, fmt.Errorf("parse agent response: %w", err)
	}

	if !resp.Success {
		return coreinvoice.SubmitResult{}, &coreinvoice.SubmissionError{
			Code:    resp.ErrorCode,
			Message: resp.ErrorMessage,
		}
	}

	c.log.Debug("invoice generated by agent",
		"invoice_number", resp.InvoiceNumber,
		"correlation_id", ctxutil.GetCorrelationID(ctx),
	)

	return coreinvoice.SubmitResult{
		InvoiceNumber: resp.InvoiceNumber,
		InvoiceID:     resp.InvoiceID,
	}, nil
}

// FetchDocument retrieves the PDF for a previously generated invoice. The
// agent answers with the PDF bytes on success, or an XML error envelope,
// which is surfaced as a *invoice.UpstreamError.
func (c *Client) FetchDocument(ctx context.Context, invoiceNumber string) ([]byte, error) {
	payload := xmlPDFRequest{
		AgentKey:      c.creds.AgentKey(),
		InvoiceNumber: invoiceNumber,
	}

	data, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal pdf request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pdfPath, bytes.NewReader(append([]byte(xml.Header), data...)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/pdf") {
		return body, nil
	}

	// Not a PDF: the agent reports fetch failures as an XML envelope.
	var errResp xmlInvoiceResponse
	if err := xml.Unmarshal(body, &errResp); err != nil {
		return nil, fmt.Errorf("unexpected agent response: %w", err)
	}

	return nil, &coreinvoice.UpstreamError{Message: errResp.ErrorMessage}
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(append([]byte(xml.Header), data...)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
