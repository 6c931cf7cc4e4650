// internal/api/orders/update-status/models.go
package updatestatus

type Input struct {
	OrderID        string  `json:"orderId"`
	NewStatus      string  `json:"newStatus"`
	PreviousStatus *string `json:"previousStatus"`

	CallerUID string `json:"-"`
}

type Output struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusChangedEvent is published after a status update commits.
type StatusChangedEvent struct {
	OrderID          string `json:"orderId"`
	StoreID          string `json:"storeId"`
	PreviousStatus   string `json:"previousStatus"`
	NewStatus        string `json:"newStatus"`
	InventoryReduced bool   `json:"inventoryReduced"`
	LowStockAlerts   int    `json:"lowStockAlerts"`
}
