// internal/api/storefront/search-products/models.go
package searchproducts

import "storefront-platform/internal/models"

type Input struct {
	Query      string `form:"q"`
	Category   string `form:"category"`
	PriceRange string `form:"price"`
	Sort       string `form:"sort"`
	From       int    `form:"from"`
	Size       int    `form:"size"`
}

type Output struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Categories []string         `json:"categories"`
	From       int              `json:"from"`
	Size       int              `json:"size"`
}
