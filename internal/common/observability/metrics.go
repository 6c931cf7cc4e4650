package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Instruments are
// exported through the default prometheus registry served on /metrics.
type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	fulfillmentCount otelmetric.Int64Counter
	fulfillmentTime  otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	fulfillmentCount, err := meter.Int64Counter(
		"orders.status_updates",
		otelmetric.WithDescription("Order status updates processed"),
	)
	if err != nil {
		return nil, err
	}

	fulfillmentTime, err := meter.Float64Histogram(
		"orders.status_update.duration",
		otelmetric.WithDescription("Order status update duration including inventory reduction"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:    provider,
		meter:            meter,
		fulfillmentCount: fulfillmentCount,
		fulfillmentTime:  fulfillmentTime,
	}, nil
}

// RecordStatusUpdate counts one order status update and its latency.
func (o *Observability) RecordStatusUpdate(ctx context.Context, duration time.Duration, outcome string, inventoryReduced bool) {
	if o == nil || o.fulfillmentCount == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("inventory_reduced", inventoryReduced),
	)
	o.fulfillmentCount.Add(ctx, 1, attrs)
	o.fulfillmentTime.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
