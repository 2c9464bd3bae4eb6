// Package httptransport assembles the public HTTP surface. Module handlers own
// their routes; this package only adds the shared middleware chain.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledgerguard/pkg/platform/httputil"
	"ledgerguard/pkg/platform/middleware/auth"
	"ledgerguard/pkg/platform/middleware/metadata"
	"ledgerguard/pkg/platform/middleware/request"
	"ledgerguard/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig lists what the router needs from the composition root.
type RouterConfig struct {
	Tokens   auth.TokenValidator
	Logger   *slog.Logger
	Handlers []Registrar
	// MetricsHandler overrides the default Prometheus registry handler.
	MetricsHandler http.Handler
}

// NewRouter wires health, metrics and the authenticated /v1 API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.RequireActor(cfg.Tokens, cfg.Logger))
		for _, h := range cfg.Handlers {
			h.Register(r)
		}
	})

	return r
}
