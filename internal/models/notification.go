// internal/models/notification.go
package models

import "time"

const (
	NotificationLowStockProduct = "LOW_STOCK_PRODUCT"
	NotificationLowStockVariant = "LOW_STOCK_VARIANT"
)

// Notification is a dashboard alert for a merchant. UserID equals the store id.
type Notification struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	StoreID        string    `json:"storeId"`
	Type           string    `json:"type"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	VariantKey     string    `json:"variantId,omitempty"`
	RemainingStock int       `json:"remainingStock"`
	Message        string    `json:"message"`
	Link           string    `json:"link"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
