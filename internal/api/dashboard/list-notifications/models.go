// internal/api/dashboard/list-notifications/models.go
package listnotifications

import "storefront-platform/internal/models"

type Input struct {
	Unread bool `form:"unread"`
	Limit  int  `form:"limit"`
}

type Output struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}
