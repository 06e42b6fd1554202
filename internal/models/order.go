package models

import "time"

// Order status values. Admin updates may set any of them; guests may only
// move NEW to CANCELED.
const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCanceled   = "CANCELED"
)

const (
	OrderTypeTakeaway = "TAKEAWAY"
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeReserve  = "RESERVE"
)

const (
	PaymentCOD      = "COD"
	PaymentTransfer = "TRANSFER"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

func ValidOrderType(s string) bool {
	switch s {
	case OrderTypeTakeaway, OrderTypeDineIn, OrderTypeReserve:
		return true
	}
	return false
}

// OrderItem is a snapshot of the product at order time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	PriceSell float64 `json:"priceSell"`
	PriceCost float64 `json:"priceCost"`
	Qty       int     `json:"qty"`
}

type OrderCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderMeta carries fulfillment details. ScheduleAt is the raw value sent by
// the storefront's datetime picker and is kept opaque.
type OrderMeta struct {
	OrderType   string  `json:"orderType"`
	TableNumber string  `json:"tableNumber"`
	Guests      int     `json:"guests"`
	ScheduleAt  *string `json:"scheduleAt"`
	Note        string  `json:"note"`
}

// PromoSnapshot freezes the promotion state applied at creation time.
type PromoSnapshot struct {
	Active  bool    `json:"active"`
	Percent float64 `json:"percent"`
}

type Order struct {
	ID            string        `json:"id"`
	Status        string        `json:"status"`
	Customer      OrderCustomer `json:"customer"`
	PaymentMethod string        `json:"paymentMethod"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	CostTotal     float64       `json:"costTotal"`
	Profit        float64       `json:"profit"`
	PromoSnapshot PromoSnapshot `json:"promoSnapshot"`
	Meta          OrderMeta     `json:"meta"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}
