// Package web provides the HTTP API for the inventory server: entity CRUD
// plus the archive export and import endpoints.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/JonMunkholm/stow/internal/config"
	"github.com/JonMunkholm/stow/internal/inventory"
	mw "github.com/JonMunkholm/stow/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Store is the persistence surface the handlers need. *store.Store satisfies
// it; tests use an in-memory fake.
type Store interface {
	ListLocations(ctx context.Context) ([]inventory.Location, error)
	CreateLocation(ctx context.Context, params inventory.LocationParams) (inventory.Location, error)
	GetLocation(ctx context.Context, id string) (inventory.Location, error)
	DeleteLocation(ctx context.Context, id string) error

	ListTotes(ctx context.Context) ([]inventory.Tote, error)
	CreateTote(ctx context.Context, params inventory.ToteParams) (inventory.Tote, error)
	GetTote(ctx context.Context, id string) (inventory.Tote, error)
	DeleteTote(ctx context.Context, id string) error

	ListItems(ctx context.Context) ([]inventory.Item, error)
	CreateItem(ctx context.Context, params inventory.ItemParams, toteID string) (inventory.Item, error)
	GetItem(ctx context.Context, id string) (inventory.Item, error)
	DeleteItem(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]inventory.User, error)
	CreateUser(ctx context.Context, params inventory.UserParams) (inventory.User, error)
}

// Server is the HTTP server for the inventory API.
type Server struct {
	store   Store
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
	imports *importLimiter
}

// NewServer creates a new Server instance.
func NewServer(store Store, cfg *config.Config) *Server {
	s := &Server{
		store:   store,
		cfg:     cfg,
		router:  chi.NewRouter(),
		imports: newImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWait),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Get("/locations", s.handleListLocations)
		r.Post("/locations", s.handleCreateLocation)
		r.Get("/locations/{id}", s.handleGetLocation)
		r.Delete("/locations/{id}", s.handleDeleteLocation)

		r.Get("/totes", s.handleListTotes)
		r.Post("/totes", s.handleCreateTote)
		r.Get("/totes/{id}", s.handleGetTote)
		r.Delete("/totes/{id}", s.handleDeleteTote)
		r.Post("/totes/{toteID}/items", s.handleCreateToteItem)

		r.Get("/items", s.handleListItems)
		r.Post("/items", s.handleCreateItem)
		r.Get("/items/{id}", s.handleGetItem)
		r.Delete("/items/{id}", s.handleDeleteItem)

		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1,
			lastReset: time.Now(),
		}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
// RemoteAddr is already the real client IP after TrustedRealIP runs.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
