package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantKey(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want string
	}{
		{"empty", nil, ""},
		{"single", map[string]string{"size": "M"}, "size:M"},
		{"sorted by key", map[string]string{"size": "M", "color": "red"}, "color:red|size:M"},
		{"three", map[string]string{"z": "1", "a": "2", "m": "3"}, "a:2|m:3|z:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VariantKey(tt.in))
		})
	}
}

func TestVariantKey_OrderIndependent(t *testing.T) {
	a := map[string]string{}
	a["size"] = "M"
	a["color"] = "red"
	b := map[string]string{}
	b["color"] = "red"
	b["size"] = "M"

	for i := 0; i < 20; i++ {
		assert.Equal(t, VariantKey(a), VariantKey(b))
	}
}

func TestParseVariantKey_RoundTrip(t *testing.T) {
	sel := map[string]string{"size": "M", "color": "red"}
	assert.Equal(t, sel, ParseVariantKey(VariantKey(sel)))
	assert.Empty(t, ParseVariantKey(""))
}
