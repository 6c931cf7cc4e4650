// internal/api/products/notify/models.go
package notify

type Input struct {
	ProductID string `json:"productId"`
	Email     string `json:"email"`
}

type Output struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
