// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TenantRoutingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_tenant_routing_decisions_total",
			Help: "Routing decisions taken by the tenant resolver",
		},
		[]string{"action"},
	)

	InventoryDecrements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_inventory_decrements_total",
			Help: "Stock counters reduced by order fulfillment",
		},
		[]string{"kind"},
	)

	LowStockNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_low_stock_notifications_total",
			Help: "Low-stock notifications by outcome",
		},
		[]string{"type", "outcome"},
	)

	PromoClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_promo_claims_total",
			Help: "Promo allocation attempts at signup by result",
		},
		[]string{"result"},
	)

	NotifySignups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notify_signups_total",
			Help: "Back-in-stock list registrations by result",
		},
		[]string{"result"},
	)
)
