// internal/api/storefront/get-store/models.go
package getstore

import "storefront-platform/internal/models"

type Output struct {
	Store *models.Store `json:"store"`
}
