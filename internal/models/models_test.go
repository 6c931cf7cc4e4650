package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntMapNullRoundTrip(t *testing.T) {
	var m IntMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	require.NoError(t, m.Scan([]byte(`{"size:M":5}`)))
	assert.Equal(t, IntMap{"size:M": 5}, m)
}

func TestOrderItemsScan(t *testing.T) {
	var items OrderItems
	require.NoError(t, items.Scan([]byte(`[{"productId":"p1","quantity":2,"variant":{"size":"M"}}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, map[string]string{"size": "M"}, items[0].Variant)
}

func TestSimpleStock(t *testing.T) {
	assert.Equal(t, 4, (&Product{Inventory: 4, Quantity: 9}).SimpleStock())
	assert.Equal(t, 9, (&Product{Quantity: 9}).SimpleStock())
	assert.Equal(t, 0, (&Product{}).SimpleStock())
}

func TestPromoCanClaim(t *testing.T) {
	assert.True(t, PromoConfig{TotalSpots: 100, UsedSpots: 99, IsActive: true}.CanClaim())
	assert.False(t, PromoConfig{TotalSpots: 100, UsedSpots: 100, IsActive: true}.CanClaim())
	assert.False(t, PromoConfig{TotalSpots: 100, UsedSpots: 0, IsActive: false}.CanClaim())
}

func TestDefaultWebsite(t *testing.T) {
	w := DefaultWebsite("Acme", "https://cdn/logo.svg")
	assert.False(t, w.Enabled)
	assert.Equal(t, "classic", w.TemplateID)
	assert.Equal(t, "Welcome to Acme", w.Hero.Title)
	assert.Equal(t, "#ffffff", w.Theme.BackgroundColor)
}
