package invoice

import (
	"errors"
	"testing"

	"webshoptech/szamlabridge/internal/core/buyer"
	coreinvoice "webshoptech/szamlabridge/internal/core/invoice"
	"webshoptech/szamlabridge/internal/core/order"
)

func TestComposer_Compose(t *testing.T) {
	tests := []struct {
		name     string
		scale    int64
		items    []order.Item
		expected []struct {
			net   string
			vat   string
			gross string
		}
	}{
		{
			name:  "single item single quantity",
			scale: 100,
			items: []order.Item{
				{Title: "Widget", UnitPrice: 1000, TaxAmount: 270, LineTotal: 1000, Quantity: 1},
			},
			expected: []struct {
				net   string
				vat   string
				gross string
			}{
				{net: "10.00", vat: "2.70", gross: "12.70"},
			},
		},
		{
			name:  "tax split across quantity",
			scale: 100,
			items: []order.Item{
				{Title: "Widget", UnitPrice: 1000, TaxAmount: 540, LineTotal: 2000, Quantity: 2},
			},
			expected: []struct {
				net   string
				vat   string
				gross string
			}{
				{net: "10.00", vat: "2.70", gross: "22.70"},
			},
		},
		{
			name:  "zero quantity treated as one",
			scale: 100,
			items: []order.Item{
				{Title: "Widget", UnitPrice: 1000, TaxAmount: 270, LineTotal: 1000, Quantity: 0},
			},
			expected: []struct {
				net   string
				vat   string
				gross string
			}{
				{net: "10.00", vat: "2.70", gross: "12.70"},
			},
		},
		{
			name:  "custom minor unit scale",
			scale: 1000,
			items: []order.Item{
				{Title: "Widget", UnitPrice: 10000, TaxAmount: 2700, LineTotal: 10000, Quantity: 1},
			},
			expected: []struct {
				net   string
				vat   string
				gross string
			}{
				{net: "10.00", vat: "2.70", gross: "12.70"},
			},
		},
		{
			name:  "multiple items",
			scale: 100,
			items: []order.Item{
				{Title: "Widget", UnitPrice: 1000, TaxAmount: 270, LineTotal: 1000, Quantity: 1},
				{Title: "Gadget", UnitPrice: 500, TaxAmount: 135, LineTotal: 500, Quantity: 1},
			},
			expected: []struct {
				net   string
				vat   string
				gross string
			}{
				{net: "10.00", vat: "2.70", gross: "12.70"},
				{net: "5.00", vat: "1.35", gross: "6.35"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewComposer(tt.scale)

			inv, err := composer.Compose(order.Order{ID: 42, Items: tt.items}, buyer.Buyer{Name: "Acme Kft."})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if inv.Type != coreinvoice.TypeInvoice {
				t.Errorf("expected invoice type %q, got %q", coreinvoice.TypeInvoice, inv.Type)
			}

			if inv.Buyer.Name != "Acme Kft." {
				t.Errorf("expected buyer name to be carried, got %q", inv.Buyer.Name)
			}

			if len(inv.Lines) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d", len(tt.expected), len(inv.Lines))
			}

			for i, exp := range tt.expected {
				line := inv.Lines[i]
				if got := line.Net.StringFixed(2); got != exp.net {
					t.Errorf("line %d: expected net %s, got %s", i, exp.net, got)
				}
				if got := line.VAT.StringFixed(2); got != exp.vat {
					t.Errorf("line %d: expected vat %s, got %s", i, exp.vat, got)
				}
				if got := line.Gross.StringFixed(2); got != exp.gross {
					t.Errorf("line %d: expected gross %s, got %s", i, exp.gross, got)
				}
				if line.Description != tt.items[i].Title {
					t.Errorf("line %d: expected description %q, got %q", i, tt.items[i].Title, line.Description)
				}
			}
		})
	}
}

func TestComposer_Compose_EmptyOrder(t *testing.T) {
	composer := NewComposer(DefaultMinorUnitScale)

	_, err := composer.Compose(order.Order{ID: 7}, buyer.Buyer{})
	if !errors.Is(err, coreinvoice.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestNewComposer_InvalidScaleFallsBack(t *testing.T) {
	composer := NewComposer(0)

	inv, err := composer.Compose(order.Order{
		ID:    1,
		Items: []order.Item{{Title: "Widget", UnitPrice: 250, TaxAmount: 0, LineTotal: 250, Quantity: 1}},
	}, buyer.Buyer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := inv.Lines[0].Net.StringFixed(2); got != "2.50" {
		t.Errorf("expected net 2.50 with default scale, got %s", got)
	}
}
