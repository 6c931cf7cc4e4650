// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const ProductStatusActive = "Active"

// Product stock is either simple (Inventory, mirrored into Quantity) or
// per-variant (VariantStock non-nil), never both.
type Product struct {
	ID                       string          `json:"id"`
	StoreID                  string          `json:"storeId"`
	Name                     string          `json:"name"`
	Description              string          `json:"description,omitempty"`
	Category                 string          `json:"category"`
	Price                    decimal.Decimal `json:"price"`
	Inventory                int             `json:"inventory"`
	Quantity                 int             `json:"quantity"`
	VariantStock             IntMap          `json:"variantStock,omitempty"`
	LowStockThreshold        int             `json:"lowStockThreshold,omitempty"`
	VariantLowStockThreshold IntMap          `json:"variantLowStockThreshold,omitempty"`
	NotifyWhenAvailable      pq.StringArray  `json:"notifyWhenAvailable,omitempty"`
	Status                   string          `json:"status"`
	Sales                    int             `json:"sales"`
	CreatedAt                time.Time       `json:"createdAt"`
}

// HasVariantStock reports whether stock is tracked per variant.
func (p *Product) HasVariantStock() bool {
	return p.VariantStock != nil
}

// SimpleStock is the scalar stock, falling back to the legacy quantity field.
func (p *Product) SimpleStock() int {
	if p.Inventory > 0 {
		return p.Inventory
	}
	return p.Quantity
}
