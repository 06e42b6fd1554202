package handlers

import (
	"errors"
	"testing"
	"time"

	"backend/internal/models"
)

var testCatalog = []models.Product{
	{ID: "P1", Name: "Bánh cuốn", PriceSell: 50000, PriceCost: 30000},
	{ID: "P2", Name: "Trà đá", PriceSell: 5000, PriceCost: 1000},
}

func TestPriceOrderItemsWithoutPromo(t *testing.T) {
	priced, err := priceOrderItems(testCatalog, []createOrderItemRequest{{ProductID: "P1", Qty: 2}})
	if err != nil {
		t.Fatalf("priceOrderItems returned error: %v", err)
	}
	if priced.Subtotal != 100000 {
		t.Fatalf("expected subtotal 100000, got %v", priced.Subtotal)
	}
	if priced.CostTotal != 60000 {
		t.Fatalf("expected costTotal 60000, got %v", priced.CostTotal)
	}
	if len(priced.Items) != 1 || priced.Items[0].PriceSell != 50000 || priced.Items[0].Qty != 2 {
		t.Fatalf("unexpected items %+v", priced.Items)
	}
}

func TestPriceOrderItemsUnknownProductFailsWholeOrder(t *testing.T) {
	_, err := priceOrderItems(testCatalog, []createOrderItemRequest{
		{ProductID: "P1", Qty: 1},
		{ProductID: "NOPE", Qty: 1},
	})
	var notFound unknownProductError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected unknownProductError, got %v", err)
	}
	if notFound.ProductID != "NOPE" {
		t.Fatalf("expected NOPE, got %s", notFound.ProductID)
	}
}

func TestPriceOrderItemsClampsQuantity(t *testing.T) {
	priced, err := priceOrderItems(testCatalog, []createOrderItemRequest{{ProductID: "P2", Qty: 0}})
	if err != nil {
		t.Fatalf("priceOrderItems returned error: %v", err)
	}
	if priced.Items[0].Qty != 1 || priced.Subtotal != 5000 {
		t.Fatalf("expected qty clamped to 1, got %+v", priced)
	}
}

func TestPromoDiscountRoundsHalfUp(t *testing.T) {
	tests := []struct {
		subtotal float64
		percent  float64
		want     float64
	}{
		{100000, 10, 10000},
		{100000, 0, 0},
		{15, 10, 2},   // 1.5 rounds up
		{14, 10, 1},   // 1.4 rounds down
		{333, 15, 50}, // 49.95 rounds up
	}
	for _, tc := range tests {
		if got := promoDiscount(tc.subtotal, tc.percent); got != tc.want {
			t.Fatalf("promoDiscount(%v, %v) = %v, want %v", tc.subtotal, tc.percent, got, tc.want)
		}
	}
}

func TestPromoActiveAtRespectsWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		promo models.PromoConfig
		want  bool
	}{
		{"disabled", models.PromoConfig{Enabled: false, Percent: 10}, false},
		{"zero percent", models.PromoConfig{Enabled: true, Percent: 0}, false},
		{"no bounds", models.PromoConfig{Enabled: true, Percent: 10}, true},
		{"inside window", models.PromoConfig{Enabled: true, Percent: 10, Start: str("2025-06-01T00:00"), End: str("2025-06-30T23:59")}, true},
		{"before start", models.PromoConfig{Enabled: true, Percent: 10, Start: str("2025-07-01T00:00")}, false},
		{"after end", models.PromoConfig{Enabled: true, Percent: 10, End: str("2025-06-01T00:00")}, false},
		{"unparseable bounds ignored", models.PromoConfig{Enabled: true, Percent: 10, Start: str("soon")}, true},
	}
	for _, tc := range tests {
		if got := promoActiveAt(tc.promo, now); got != tc.want {
			t.Fatalf("%s: promoActiveAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMaskPhoneHidesAllButLastFour(t *testing.T) {
	if got := maskPhone("0912 345 678"); got != "•••••••5678" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := maskPhone("123"); got != "123" {
		t.Fatalf("short numbers pass through, got %q", got)
	}
}

func TestPhoneTailStripsNonDigits(t *testing.T) {
	if got := phoneTail("+84 (091) 234-5678"); got != "5678" {
		t.Fatalf("expected 5678, got %q", got)
	}
}

func TestFormatVND(t *testing.T) {
	if got := formatVND(1234567); got != "1.234.567₫" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := formatVND(900); got != "900₫" {
		t.Fatalf("unexpected format %q", got)
	}
}
