package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/handlers"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/middleware"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/auth"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/config"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/events"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/registrations"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/metrics"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

// NewRouter wires services, handlers, and the middleware stack over the
// given store.
func NewRouter(cfg config.Config, logger zerolog.Logger, store storage.Store, version, gitCommit, buildDate string) http.Handler {
	authService := auth.NewService(store, logger, cfg.Auth.BcryptCost)
	catalog := events.NewService(store, logger)
	ledger := registrations.NewLedger(store, logger)

	authHandler := handlers.NewAuthHandler(authService)
	eventsHandler := handlers.NewEventsHandler(catalog)
	registrationsHandler := handlers.NewRegistrationsHandler(ledger)

	requireUser := middleware.RequireUser(authService)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(store))
	mux.Handle("/version", VersionHandler(version, gitCommit, buildDate))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	}))
	mux.Handle("/api/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	mux.Handle("/api/me", methodMux(map[string]http.Handler{
		http.MethodGet: requireUser(http.HandlerFunc(authHandler.Me)),
	}))

	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/api/events/{id}", methodMux(map[string]http.Handler{
		http.MethodPut:    requireUser(http.HandlerFunc(eventsHandler.Update)),
		http.MethodDelete: requireUser(http.HandlerFunc(eventsHandler.Delete)),
	}))
	mux.Handle("/api/events/{id}/register", methodMux(map[string]http.Handler{
		http.MethodPost:   requireUser(http.HandlerFunc(registrationsHandler.Register)),
		http.MethodDelete: requireUser(http.HandlerFunc(registrationsHandler.Unregister)),
	}))
	mux.Handle("/api/registrations", methodMux(map[string]http.Handler{
		http.MethodGet: requireUser(http.HandlerFunc(registrationsHandler.Mine)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
