// internal/models/promo.go
package models

// PromoConfig is the singleton early-access counter.
type PromoConfig struct {
	ID         string `json:"id"`
	TotalSpots int    `json:"totalSpots"`
	UsedSpots  int    `json:"usedSpots"`
	IsActive   bool   `json:"isActive"`
}

// CanClaim reports whether another spot may be taken.
func (p PromoConfig) CanClaim() bool {
	return p.IsActive && p.TotalSpots-p.UsedSpots > 0
}
