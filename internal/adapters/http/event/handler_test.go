package event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webshoptech/szamlabridge/internal/core/order"
	"webshoptech/szamlabridge/internal/testutil"
)

// spyWorkflow records the orders it receives.
type spyWorkflow struct {
	orders []order.Order
}

func (s *spyWorkflow) HandleOrderFinalized(_ context.Context, ord order.Order) {
	s.orders = append(s.orders, ord)
}

func TestHandler_OrderCreated(t *testing.T) {
	workflow := &spyWorkflow{}
	handler := NewHandler(workflow, testutil.NewNullLogger())

	body := OrderCreatedRequest{
		Order: order.Order{
			ID: 42,
			Billing: &order.BillingAddress{
				Name: "Kiss János",
				City: "Budapest",
			},
			VATNumber: "12345678",
			Items: []order.Item{
				{Title: "Widget", UnitPrice: 1000, TaxAmount: 270, LineTotal: 1000, Quantity: 1},
			},
		},
	}

	w := httptest.NewRecorder()
	handler.OrderCreated(w, testutil.NewJSONRequest(t, http.MethodPost, "/events/order-created", body))

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}

	var response OrderCreatedResponse
	testutil.DecodeJSONResponse(t, w, &response)
	if response.Status != "accepted" {
		t.Errorf("expected status accepted, got %q", response.Status)
	}

	if len(workflow.orders) != 1 {
		t.Fatalf("expected the workflow to receive 1 order, got %d", len(workflow.orders))
	}
	if workflow.orders[0].ID != 42 {
		t.Errorf("expected order id 42, got %d", workflow.orders[0].ID)
	}
	if workflow.orders[0].VATNumber != "12345678" {
		t.Errorf("expected vat number to be carried, got %q", workflow.orders[0].VATNumber)
	}
}

func TestHandler_OrderCreated_InvalidJSON(t *testing.T) {
	workflow := &spyWorkflow{}
	handler := NewHandler(workflow, testutil.NewNullLogger())

	req := httptest.NewRequest(http.MethodPost, "/events/order-created", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.OrderCreated(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if code := testutil.ErrorCode(t, w); code != "invalid_payload" {
		t.Errorf("expected error code invalid_payload, got %q", code)
	}
	if len(workflow.orders) != 0 {
		t.Errorf("expected no workflow invocations, got %d", len(workflow.orders))
	}
}

func TestHandler_OrderCreated_MissingOrderID(t *testing.T) {
	workflow := &spyWorkflow{}
	handler := NewHandler(workflow, testutil.NewNullLogger())

	w := httptest.NewRecorder()
	handler.OrderCreated(w, testutil.NewJSONRequest(t, http.MethodPost, "/events/order-created", OrderCreatedRequest{}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if len(workflow.orders) != 0 {
		t.Errorf("expected no workflow invocations, got %d", len(workflow.orders))
	}
}

func TestHandler_OrderCreated_AcknowledgesRegardlessOfOutcome(t *testing.T) {
	// The workflow swallows its own failures; the handler only sees the
	// call return, so a non-invoiceable order is still acknowledged.
	workflow := &spyWorkflow{}
	handler := NewHandler(workflow, testutil.NewNullLogger())

	body := OrderCreatedRequest{Order: order.Order{ID: 7}}

	w := httptest.NewRecorder()
	handler.OrderCreated(w, testutil.NewJSONRequest(t, http.MethodPost, "/events/order-created", body))

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202 for an order without items, got %d", w.Code)
	}
}
