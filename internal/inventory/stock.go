package inventory

import (
	"storefront-platform/internal/models"
)

// DefaultLowStockThreshold applies when neither a variant nor a product
// threshold is set.
const DefaultLowStockThreshold = 10

// ActiveStatuses are the order statuses that have already consumed stock.
type ActiveStatuses map[string]struct{}

func NewActiveStatuses(statuses ...string) ActiveStatuses {
	s := make(ActiveStatuses, len(statuses))
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

func (a ActiveStatuses) Contains(status string) bool {
	_, ok := a[status]
	return ok
}

// EntersActive reports whether moving from previous to next should reduce
// stock: next is active and previous is not.
func (a ActiveStatuses) EntersActive(previous, next string) bool {
	return a.Contains(next) && !a.Contains(previous)
}

// Reduction is the effect of one line item on one product.
type Reduction struct {
	ProductID  string
	VariantKey string // empty for simple stock
	Previous   int
	NewStock   int
	Threshold  int
}

// LowStock reports whether the new level should raise an alert. Reaching
// zero is out of stock, not low stock.
func (r Reduction) LowStock() bool {
	return r.NewStock > 0 && r.NewStock <= r.Threshold
}

// NotificationType is the alert type for this reduction.
func (r Reduction) NotificationType() string {
	if r.VariantKey != "" {
		return models.NotificationLowStockVariant
	}
	return models.NotificationLowStockProduct
}

// floorSub subtracts qty from cur without going below zero.
func floorSub(cur, qty int) int {
	if qty < 0 {
		qty = 0
	}
	if n := cur - qty; n > 0 {
		return n
	}
	return 0
}

// Apply reduces p's stock in place for one line item and returns what
// changed. Variant stock is used when the item carries a selection and the
// product tracks stock per variant; otherwise the scalar counter is reduced
// and mirrored into the legacy quantity field.
func Apply(p *models.Product, item models.OrderItem, defaultThreshold int) Reduction {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultLowStockThreshold
	}

	if len(item.Variant) > 0 && p.HasVariantStock() {
		key := VariantKey(item.Variant)
		cur := p.VariantStock[key]
		next := floorSub(cur, item.Quantity)
		p.VariantStock[key] = next

		threshold := defaultThreshold
		if t := p.VariantLowStockThreshold[key]; t > 0 {
			threshold = t
		} else if p.LowStockThreshold > 0 {
			threshold = p.LowStockThreshold
		}
		return Reduction{ProductID: p.ID, VariantKey: key, Previous: cur, NewStock: next, Threshold: threshold}
	}

	cur := p.SimpleStock()
	next := floorSub(cur, item.Quantity)
	p.Inventory = next
	p.Quantity = next

	threshold := defaultThreshold
	if p.LowStockThreshold > 0 {
		threshold = p.LowStockThreshold
	}
	return Reduction{ProductID: p.ID, Previous: cur, NewStock: next, Threshold: threshold}
}
