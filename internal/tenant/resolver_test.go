package tenant

import (
	"net/http"
	"testing"

	"storefront-platform/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func newTestResolver() *Resolver {
	return NewResolver(config.TenantConfig{
		BaseDomain:       "koopi.online",
		PreviewDomains:   []string{"vercel.app", "netlify.app"},
		ReservedPrefixes: []string{"/dashboard", "/api"},
		ExcludedPrefixes: []string{"/_next/static", "/_next/image", "/favicon.ico"},
	})
}

func TestResolve(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name  string
		host  string
		path  string
		query string
		want  Decision
	}{
		{
			name: "www apex redirects with path and query",
			host: "www.koopi.online", path: "/pricing", query: "ref=ad",
			want: Decision{Action: ActionRedirect, Status: http.StatusMovedPermanently, Location: "https://koopi.online/pricing?ref=ad"},
		},
		{
			name: "tenant root rewritten",
			host: "acme.koopi.online", path: "/",
			want: Decision{Action: ActionRewrite, Path: "/store/acme/", Tenant: "acme"},
		},
		{
			name: "tenant subpath rewritten",
			host: "acme.koopi.online", path: "/products/42", query: "color=red",
			want: Decision{Action: ActionRewrite, Path: "/store/acme/products/42", Tenant: "acme"},
		},
		{
			name: "port ignored",
			host: "acme.koopi.online:443", path: "/cart",
			want: Decision{Action: ActionRewrite, Path: "/store/acme/cart", Tenant: "acme"},
		},
		{
			name: "nested subdomain takes first label",
			host: "shop.acme.koopi.online", path: "/",
			want: Decision{Action: ActionRewrite, Path: "/store/shop/", Tenant: "shop"},
		},
		{
			name: "tenant api passes",
			host: "acme.koopi.online", path: "/api/products/notify",
			want: Decision{Action: ActionPass, Tenant: "acme"},
		},
		{
			name: "tenant dashboard passes",
			host: "acme.koopi.online", path: "/dashboard/orders",
			want: Decision{Action: ActionPass, Tenant: "acme"},
		},
		{
			name: "apex passes",
			host: "koopi.online", path: "/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "localhost never a tenant",
			host: "acme.localhost:3000", path: "/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "preview domain never a tenant",
			host: "koopi-git-main.vercel.app", path: "/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "legacy path redirects to subdomain",
			host: "koopi.online", path: "/store/acme/products/42", query: "a=1",
			want: Decision{Action: ActionRedirect, Status: http.StatusMovedPermanently, Location: "https://acme.koopi.online/products/42?a=1", Tenant: "acme"},
		},
		{
			name: "legacy path with empty rest goes to root",
			host: "koopi.online", path: "/store/acme",
			want: Decision{Action: ActionRedirect, Status: http.StatusMovedPermanently, Location: "https://acme.koopi.online/", Tenant: "acme"},
		},
		{
			name: "legacy path on localhost passes",
			host: "localhost:3000", path: "/store/acme",
			want: Decision{Action: ActionPass},
		},
		{
			name: "store prefix without name passes",
			host: "koopi.online", path: "/store/",
			want: Decision{Action: ActionPass},
		},
		{
			name: "static assets excluded",
			host: "acme.koopi.online", path: "/_next/static/chunk.js",
			want: Decision{Action: ActionPass},
		},
		{
			name: "www on foreign domain redirects to apex",
			host: "www.acme-shop.com", path: "/x",
			want: Decision{Action: ActionRedirect, Status: http.StatusMovedPermanently, Location: "https://koopi.online/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.host, tt.path, tt.query))
		})
	}
}

func TestResolve_UnvalidatedLabelStillRewrites(t *testing.T) {
	r := newTestResolver()
	d := r.Resolve("no_such--store.koopi.online", "/", "")
	assert.Equal(t, ActionRewrite, d.Action)
	assert.Equal(t, "no_such--store", d.Tenant)
}
