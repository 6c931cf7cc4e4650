// internal/api/onboarding/launchpad/models.go
package launchpad

type Input struct {
	StoreName string `json:"storeName"`
	Logo      string `json:"logo,omitempty"` // data URL

	CallerUID string `json:"-"`
}

type Output struct {
	Success  bool   `json:"success"`
	Slug     string `json:"slug"`
	StoreURL string `json:"storeUrl"`
	Logo     string `json:"logo"`
}
