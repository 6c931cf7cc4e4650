// Package tenant maps a request host and path to a storefront tenant.
package tenant

import (
	"net"
	"net/http"
	"strings"

	"storefront-platform/internal/common/config"
)

// Action is the routing outcome for one request.
type Action string

const (
	ActionPass     Action = "pass"
	ActionRedirect Action = "redirect"
	ActionRewrite  Action = "rewrite"
)

// SubdomainHeader carries the resolved tenant on rewritten requests.
const SubdomainHeader = "x-subdomain"

// Decision describes what to do with a request.
type Decision struct {
	Action   Action
	Status   int    // redirects only
	Location string // absolute redirect target
	Path     string // rewritten path
	Tenant   string
}

type Resolver struct {
	baseDomain       string
	previewDomains   []string
	reservedPrefixes []string
	excludedPrefixes []string
}

func NewResolver(cfg config.TenantConfig) *Resolver {
	return &Resolver{
		baseDomain:       strings.ToLower(cfg.BaseDomain),
		previewDomains:   cfg.PreviewDomains,
		reservedPrefixes: cfg.ReservedPrefixes,
		excludedPrefixes: cfg.ExcludedPrefixes,
	}
}

// Resolve classifies host and path. rawQuery is carried over verbatim to
// redirect targets.
func (r *Resolver) Resolve(host, path, rawQuery string) Decision {
	hostname := stripPort(strings.ToLower(host))
	if path == "" {
		path = "/"
	}

	if hasAnyPrefix(path, r.excludedPrefixes) {
		return Decision{Action: ActionPass}
	}

	if hostname == "www."+r.baseDomain {
		return r.redirect(http.StatusMovedPermanently, "https://"+r.baseDomain, path, rawQuery, "")
	}

	if r.isTenantHost(hostname) {
		label := hostname[:strings.Index(hostname, ".")]
		if label == "www" {
			return r.redirect(http.StatusMovedPermanently, "https://"+r.baseDomain, path, rawQuery, "")
		}
		if !hasAnyPrefix(path, r.reservedPrefixes) {
			return Decision{Action: ActionRewrite, Path: "/store/" + label + path, Tenant: label}
		}
		return Decision{Action: ActionPass, Tenant: label}
	}

	if strings.HasPrefix(path, "/store/") && !strings.Contains(hostname, "localhost") {
		rest := strings.TrimPrefix(path, "/store/")
		name, tail, _ := strings.Cut(rest, "/")
		if name != "" {
			target := "/" + tail
			return r.redirect(http.StatusMovedPermanently, "https://"+name+"."+r.baseDomain, target, rawQuery, name)
		}
	}

	return Decision{Action: ActionPass}
}

// isTenantHost reports whether hostname is a subdomain eligible for tenant
// routing. The apex, localhost and hosting preview domains never are.
func (r *Resolver) isTenantHost(hostname string) bool {
	if !strings.Contains(hostname, ".") {
		return false
	}
	if hostname == r.baseDomain || hostname == "www."+r.baseDomain {
		return false
	}
	if strings.Contains(hostname, "localhost") {
		return false
	}
	for _, d := range r.previewDomains {
		if d != "" && strings.Contains(hostname, d) {
			return false
		}
	}
	return true
}

func (r *Resolver) redirect(status int, origin, path, rawQuery, tenant string) Decision {
	loc := origin + path
	if rawQuery != "" {
		loc += "?" + rawQuery
	}
	return Decision{Action: ActionRedirect, Status: status, Location: loc, Tenant: tenant}
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
