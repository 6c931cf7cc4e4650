// Package api assembles the HTTP surface of the storefront service.
package api

import (
	"net/http"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers holds one handler per endpoint, built in main.
type Handlers struct {
	UpdateOrderStatus    gin.HandlerFunc
	NotifyProduct        gin.HandlerFunc
	Signup               gin.HandlerFunc
	SlugAvailability     gin.HandlerFunc
	Launchpad            gin.HandlerFunc
	GetStore             gin.HandlerFunc
	SearchProducts       gin.HandlerFunc
	ListNotifications    gin.HandlerFunc
	MarkNotificationRead gin.HandlerFunc
	UpdateWebsite        gin.HandlerFunc
}

type RouterConfig struct {
	Authenticator auth.Authenticator
	Responder     *apperrors.ErrorHandler
	Logger        logger.Logger
}

// NewRouter registers every route. Trailing-slash redirects are off so the
// tenant rewrite of "/" to "/store/<name>/" is served directly.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.Metrics(),
		middleware.CORS(),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	storefront := r.Group("/store/:storeName")
	storefront.GET("", h.GetStore)
	storefront.GET("/", h.GetStore)
	storefront.GET("/products", h.SearchProducts)

	api := r.Group("/api")
	api.POST("/products/notify", h.NotifyProduct)
	api.GET("/onboarding/slug-availability", h.SlugAvailability)

	authed := api.Group("", auth.RequireBearer(cfg.Authenticator, cfg.Responder))
	authed.PATCH("/orders/update-status", h.UpdateOrderStatus)
	authed.POST("/onboarding/signup", h.Signup)
	authed.POST("/onboarding/store", h.Launchpad)
	authed.GET("/dashboard/notifications", h.ListNotifications)
	authed.PATCH("/dashboard/notifications/:id/read", h.MarkNotificationRead)
	authed.PATCH("/dashboard/website", h.UpdateWebsite)

	return r
}
