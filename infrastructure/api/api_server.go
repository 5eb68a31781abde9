package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dialcoach/dialcoach"
	apimiddleware "github.com/dialcoach/dialcoach/infrastructure/api/middleware"
	v1 "github.com/dialcoach/dialcoach/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by a dialcoach Client.
type APIServer struct {
	client       *dialcoach.Client
	apiKeys      []string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given dialcoach Client.
// apiKeys configures write-protection: mutating methods on /api/v1/calls
// require a valid X-API-KEY. The analyze upload endpoints and all reads
// remain open, matching the original service's posture.
func NewAPIServer(client *dialcoach.Client, apiKeys []string) *APIServer {
	return &APIServer{
		client:  client,
		apiKeys: apiKeys,
		logger:  client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call
// MountRoutes(). If not called, ListenAndServe creates a default router.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(cors.Handler(cors.Options{
		// Open to all origins like the original service; tighten per deployment.
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))

	callsRouter := v1.NewCallsRouter(a.client)
	analyzeRouter := v1.NewAnalyzeRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(300 * time.Second))

		// Open route — the upload endpoint has no auth in the original.
		r.Mount("/analyze", analyzeRouter.Routes())

		// Write-protected routes — mutating methods require a valid API key.
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
			r.Mount("/calls", callsRouter.Routes())
		})
	})

	// Legacy path kept for clients of the original service.
	router.Post("/analyze_sales_call", analyzeRouter.Analyze)

	router.Get("/", a.info)
	router.Get("/health", a.health)
	router.Get("/healthz", a.health)
	router.Get("/readyz", a.ready)
}

func (a *APIServer) info(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "dialcoach",
		"status":  "ok",
	})
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *APIServer) ready(w http.ResponseWriter, r *http.Request) {
	if _, err := a.client.Calls.Count(r.Context()); err != nil {
		apimiddleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
