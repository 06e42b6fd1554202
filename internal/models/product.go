package models

import "time"

// Product is a catalog entry. Sell/cost prices are copied into orders at
// creation time, so edits here never change historical orders.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	PriceSell   float64    `json:"priceSell"`
	PriceCost   float64    `json:"priceCost"`
	Unit        string     `json:"unit"`
	Active      bool       `json:"active"`
	ImageURL    string     `json:"imageUrl"`
	Description string     `json:"description,omitempty"`
	Sauce       string     `json:"nuocCham,omitempty"`
	Pickles     string     `json:"doChua,omitempty"`
	Note        string     `json:"ghiChu,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
