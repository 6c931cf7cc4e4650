// internal/api/onboarding/signup/models.go
package signup

type Input struct {
	StoreName     string   `json:"storeName"`
	Email         string   `json:"email"`
	SellLocations []string `json:"sellLocations"`
	BusinessGoal  string   `json:"businessGoal"`
	ProductType   string   `json:"productType"`

	CallerUID string `json:"-"`
}

type Output struct {
	Success   bool   `json:"success"`
	Slug      string `json:"slug"`
	Plan      string `json:"plan"`
	PromoUser bool   `json:"promoUser"`
}
