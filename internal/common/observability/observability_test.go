package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingWithoutEndpointIsNoop(t *testing.T) {
	tr, err := NewTracing("storefront-api", "")
	require.NoError(t, err)

	_, span := tr.Tracer().Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNilObservabilityIsSafe(t *testing.T) {
	var o *Observability
	o.RecordStatusUpdate(context.Background(), time.Millisecond, "ok", true)
	assert.NoError(t, o.Shutdown(context.Background()))
}
