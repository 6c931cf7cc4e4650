// Package inventory holds the stock arithmetic applied when orders enter
// fulfillment. Everything here is pure; persistence lives with the callers.
package inventory

import (
	"sort"
	"strings"
)

// VariantKey canonicalizes a variant selection into the stock map key:
// "key:value" pairs sorted by key and joined with "|". Selection order never
// affects the result. An empty selection yields "".
func VariantKey(selection map[string]string) string {
	if len(selection) == 0 {
		return ""
	}
	keys := make([]string, 0, len(selection))
	for k := range selection {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + selection[k]
	}
	return strings.Join(parts, "|")
}

// ParseVariantKey is the inverse of VariantKey.
func ParseVariantKey(key string) map[string]string {
	out := map[string]string{}
	if key == "" {
		return out
	}
	for _, part := range strings.Split(key, "|") {
		k, v, _ := strings.Cut(part, ":")
		out[k] = v
	}
	return out
}
