// internal/models/user.go
package models

import (
	"database/sql/driver"
	"time"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	StoreName     string     `json:"storeName"`
	StoreNameSlug string     `json:"storeNameSlug"`
	Plan          string     `json:"plan"`
	PromoUser     bool       `json:"promoUser"`
	Onboarding    Onboarding `json:"onboarding"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Onboarding holds the answers collected by the signup wizard.
type Onboarding struct {
	SellLocations []string `json:"sellLocations"`
	BusinessGoal  string   `json:"businessGoal"`
	ProductType   string   `json:"productType"`
	Completed     bool     `json:"completed"`
}

func (o Onboarding) Value() (driver.Value, error) {
	return jsonValue(o)
}

func (o *Onboarding) Scan(src interface{}) error {
	return scanJSON(src, o)
}
