package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapterFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"endpoint": "product-notify"})

	log.WithError(errors.New("redis down")).Warn("rate limit check failed", map[string]interface{}{
		"ip":    "10.0.0.1",
		"cause": errors.New("timeout"),
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "product-notify", fields["endpoint"])
		assert.Equal(t, "redis down", fields["error"])
		assert.Equal(t, "timeout", fields["cause"])
		assert.Equal(t, "10.0.0.1", fields["ip"])
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	}
}

func TestNewLevels(t *testing.T) {
	l := New("warn", "json")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = New("debug", "console")
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
