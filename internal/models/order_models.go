package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the sales transaction header. Monetary fields use decimal.Decimal;
// TotalSale, TotalCost and GrossProfit are always recomputed server-side from
// the current item set and are never taken from client input.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Client          string          `json:"client"`
	Status          string          `json:"status"`
	Currency        string          `json:"currency"`
	PaymentTerms    string          `json:"payment_terms"`
	PlannedStart    string          `json:"planned_start"`
	PlannedEnd      string          `json:"planned_end"`
	ActualShip      string          `json:"actual_ship"`
	Logistics       string          `json:"logistics"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExtraCosts      decimal.Decimal `json:"extra_costs"`
	Folder          string          `json:"folder"`
	Attachments     []string        `json:"attachments"`
	TotalSale       decimal.Decimal `json:"total_sale"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	CreatedAt       time.Time       `json:"created_at"`

	OrderItems []OrderItem `json:"items"`
}

// OrderItem is one product line within an order. Its lifetime is bound to the
// parent order: updates replace the whole item set, and deleting the order
// cascades to its items.
type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	Product         string          `json:"product"`
	SKU             string          `json:"sku"`
	Color           string          `json:"color"`
	Size            string          `json:"size"`
	Quantity        int64           `json:"quantity"`
	Cost            decimal.Decimal `json:"cost"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineSale        decimal.Decimal `json:"line_sale"`
	LineCost        decimal.Decimal `json:"line_cost"`
	Note            string          `json:"note"`
}

// OrderSummary is the list-view projection of an order.
type OrderSummary struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Client      string          `json:"client"`
	Status      string          `json:"status"`
	Currency    string          `json:"currency"`
	TotalSale   decimal.Decimal `json:"total_sale"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	CreatedAt   time.Time       `json:"created_at"`
}
