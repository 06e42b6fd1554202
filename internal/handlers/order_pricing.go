package handlers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"backend/internal/models"
)

type unknownProductError struct {
	ProductID string
}

func (e unknownProductError) Error() string {
	return "Sản phẩm không tồn tại: " + e.ProductID
}

type pricedOrder struct {
	Items     []models.OrderItem
	Subtotal  float64
	CostTotal float64
}

// priceOrderItems resolves every requested line against the catalog and
// snapshots the current sell/cost prices. One unknown product fails the
// whole order. Quantity is clamped to at least 1.
func priceOrderItems(products []models.Product, items []createOrderItemRequest) (pricedOrder, error) {
	result := pricedOrder{Items: make([]models.OrderItem, 0, len(items))}

	for _, it := range items {
		prod, ok := findProduct(products, it.ProductID)
		if !ok {
			return pricedOrder{}, unknownProductError{ProductID: it.ProductID}
		}

		qty := it.Qty
		if qty < 1 {
			qty = 1
		}

		result.Subtotal += prod.PriceSell * float64(qty)
		result.CostTotal += prod.PriceCost * float64(qty)
		result.Items = append(result.Items, models.OrderItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			PriceSell: prod.PriceSell,
			PriceCost: prod.PriceCost,
			Qty:       qty,
		})
	}

	return result, nil
}

func findProduct(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// promoActiveAt reports whether the promotion applies at the given instant:
// enabled, a non-zero percent, and now inside the optional window.
func promoActiveAt(p models.PromoConfig, now time.Time) bool {
	if !p.Enabled || p.Percent == 0 {
		return false
	}
	if start, ok := parsePromoTime(p.Start); ok && now.Before(start) {
		return false
	}
	if end, ok := parsePromoTime(p.End); ok && now.After(end) {
		return false
	}
	return true
}

// parsePromoTime accepts the formats the admin console's datetime inputs
// produce, plus RFC3339 for hand-edited files.
func parsePromoTime(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	value := strings.TrimSpace(*s)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// promoDiscount rounds half-up to the nearest currency unit.
func promoDiscount(subtotal float64, percent float64) float64 {
	return math.Round(subtotal * percent / 100)
}

// maskPhone hides all but the last 4 digits.
func maskPhone(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("•", len(digits)-4) + digits[len(digits)-4:]
}

// phoneTail is the shared secret for guest lookups.
func phoneTail(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatVND renders an amount the way the storefront shows it, with dot
// thousand separators.
func formatVND(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ".") + "₫"
}
