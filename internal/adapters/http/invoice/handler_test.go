package invoice

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appinvoice "webshoptech/szamlabridge/internal/application/invoice"
	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	"webshoptech/szamlabridge/internal/testutil"
)

// stubDownloader returns fixed bytes or a fixed error.
type stubDownloader struct {
	pdf []byte
	err error
}

func (s stubDownloader) Download(_ context.Context, _ string) ([]byte, error) {
	return s.pdf, s.err
}

func serveDownload(service DownloadService, invoiceNumber string) *httptest.ResponseRecorder {
	handler := NewHandler(service, testutil.NewNullLogger())

	r := chi.NewRouter()
	r.Get("/invoice/{invoiceNumber}/download", handler.Download)

	req := httptest.NewRequest(http.MethodGet, "/invoice/"+invoiceNumber+"/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Download(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake")
	w := serveDownload(stubDownloader{pdf: pdf}, "INV-2026-001")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("expected content type application/pdf, got %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "INV-2026-001.pdf") {
		t.Errorf("expected attachment filename in disposition, got %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), pdf) {
		t.Error("expected pdf bytes in response body")
	}
}

func TestHandler_Download_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "unknown invoice number",
			err:          coreinvoice.ErrRecordNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: "invoice_not_found",
		},
		{
			name:         "invalid invoice number",
			err:          appinvoice.ErrInvalidInvoiceNumber,
			expectedCode: http.StatusNotFound,
			expectedBody: "invoice_not_found",
		},
		{
			name:         "agent key not configured",
			err:          coreinvoice.ErrAPIKeyMissing,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "api_key_missing",
		},
		{
			name:         "provider rejected the fetch",
			err:          &coreinvoice.UpstreamError{Message: "document not ready"},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "pdf_download_failed",
		},
		{
			name:         "transport failure",
			err:          errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "download_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveDownload(stubDownloader{err: tt.err}, "INV-2026-001")

			if w.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, w.Code)
			}
			if code := testutil.ErrorCode(t, w); code != tt.expectedBody {
				t.Errorf("expected error code %q, got %q", tt.expectedBody, code)
			}
		})
	}
}
