package tenant

import (
	"net/http"

	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/metrics"
)

// Middleware applies routing decisions before next sees the request, so
// rewritten paths are matched by the router like any other path.
func Middleware(resolver *Resolver, next http.Handler, log logger.Logger) http.Handler {
	log = log.WithFields(map[string]interface{}{"component": "tenant-router"})

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		d := resolver.Resolve(req.Host, req.URL.Path, req.URL.RawQuery)
		metrics.TenantRoutingDecisions.WithLabelValues(string(d.Action)).Inc()

		switch d.Action {
		case ActionRedirect:
			log.Debug("redirecting", map[string]interface{}{
				"host": req.Host, "path": req.URL.Path, "location": d.Location,
			})
			http.Redirect(w, req, d.Location, d.Status)
			return
		case ActionRewrite:
			r2 := req.Clone(req.Context())
			r2.URL.Path = d.Path
			r2.URL.RawPath = ""
			r2.RequestURI = r2.URL.RequestURI()
			r2.Header.Set(SubdomainHeader, d.Tenant)
			w.Header().Set(SubdomainHeader, d.Tenant)
			next.ServeHTTP(w, r2)
			return
		}
		next.ServeHTTP(w, req)
	})
}
