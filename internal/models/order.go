// internal/models/order.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

type Order struct {
	ID        string          `json:"id"`
	StoreID   string          `json:"storeId"`
	Items     OrderItems      `json:"items"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string            `json:"productId"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	Price     decimal.Decimal   `json:"price"`
	Variant   map[string]string `json:"variant,omitempty"`
}

// OrderItems is stored as a JSONB array.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return jsonValue([]OrderItem{})
	}
	return jsonValue([]OrderItem(o))
}

func (o *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, (*[]OrderItem)(o))
}
