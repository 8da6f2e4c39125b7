package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"webshoptech/szamlabridge/internal/core/order"
	httperrors "webshoptech/szamlabridge/internal/infrastructure/http"
)

// OrderWorkflow consumes finalized orders. It owns its own failure
// reporting; the webhook acknowledges receipt regardless of the invoicing
// outcome.
type OrderWorkflow interface {
	HandleOrderFinalized(ctx context.Context, ord order.Order)
}

// Handler bridges order-lifecycle webhooks with the invoice workflow.
type Handler struct {
	workflow OrderWorkflow
	log      *slog.Logger
}

// NewHandler creates a new event HTTP handler.
func NewHandler(workflow OrderWorkflow, log *slog.Logger) *Handler {
	return &Handler{
		workflow: workflow,
		log:      log,
	}
}

// OrderCreatedRequest is the webhook body for a finalized order.
type OrderCreatedRequest struct {
	Order order.Order `json:"order"`
}

// OrderCreatedResponse acknowledges receipt of the event.
type OrderCreatedResponse struct {
	Status string `json:"status"`
}

// OrderCreated handles POST /events/order-created requests. The invoicing
// run happens inline; its outcome never changes the acknowledgement, so the
// sender cannot fail an order on an invoicing problem.
func (h *Handler) OrderCreated(w http.ResponseWriter, r *http.Request) {
	var reqBody OrderCreatedRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "invalid_payload", "The request body is not valid JSON", h.log)
		return
	}

	if reqBody.Order.ID == 0 {
		httperrors.WriteError(w, http.StatusBadRequest, "invalid_payload", "order.id is required", h.log)
		return
	}

	h.workflow.HandleOrderFinalized(r.Context(), reqBody.Order)

	response := OrderCreatedResponse{Status: "accepted"}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode event response", "error", err)
	}
}
