// internal/api/onboarding/slug-availability/models.go
package slugavailability

type Input struct {
	Name string `form:"name"`
}

type Output struct {
	Slug        string   `json:"slug"`
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions"`
}
