package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appinvoice "webshoptech/szamlabridge/internal/application/invoice"
	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	httperrors "webshoptech/szamlabridge/internal/infrastructure/http"
)

// DownloadService produces the PDF bytes for a stored invoice number.
type DownloadService interface {
	Download(ctx context.Context, invoiceNumber string) ([]byte, error)
}

// Handler bridges HTTP traffic with the invoice retrieval service.
type Handler struct {
	service DownloadService
	log     *slog.Logger
}

// NewHandler creates a new invoice HTTP handler.
func NewHandler(service DownloadService, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Download handles GET /invoice/{invoiceNumber}/download requests and
// streams the PDF as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	invoiceNumber := chi.URLParam(r, "invoiceNumber")

	pdf, err := h.service.Download(r.Context(), invoiceNumber)
	if err != nil {
		h.handleError(w, invoiceNumber, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoiceNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.log.Error("failed to write pdf response",
			"invoice_number", invoiceNumber,
			"error", err,
		)
	}
}

// handleError maps retrieval errors to HTTP status codes and stable error
// codes. An invalid invoice number is indistinguishable from an unknown one
// on purpose.
func (h *Handler) handleError(w http.ResponseWriter, invoiceNumber string, err error) {
	var upstreamErr *coreinvoice.UpstreamError

	switch {
	case errors.Is(err, appinvoice.ErrInvalidInvoiceNumber),
		errors.Is(err, coreinvoice.ErrRecordNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "invoice_not_found", "No invoice found with the given number", h.log)
	case errors.Is(err, coreinvoice.ErrAPIKeyMissing):
		httperrors.WriteError(w, http.StatusInternalServerError, "api_key_missing", "Invoicing agent key is not configured", h.log)
	case errors.As(err, &upstreamErr):
		httperrors.WriteError(w, http.StatusInternalServerError, "pdf_download_failed", "The invoicing provider could not return the document", h.log)
	default:
		h.log.Error("invoice download failed",
			"invoice_number", invoiceNumber,
			"error", err,
		)
		httperrors.WriteError(w, http.StatusInternalServerError, "download_error", "An internal error occurred while downloading the invoice", h.log)
	}
}
