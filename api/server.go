package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/models"
)

const ServerName = "API"

// NewRouter mounts the public routes on a chi router.
func NewRouter(handler *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", handler.HealthCheck)

	r.Post("/create-order", handler.CreateOrder)
	r.Post("/webhook", handler.Webhook)
	r.Post("/verify-and-mint", handler.VerifyAndMint)
	r.Get("/order-status/{orderId}", handler.OrderStatus)
	r.Get("/orders", handler.ListOrders)
	r.Get("/balance/{address}", handler.Balance)

	r.Route("/vault/{address}", func(r chi.Router) {
		r.Get("/", handler.Vault)
		r.Post("/preflight", handler.VaultPreflight)
	})

	return r
}

// requestLogger writes one logrus line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("[API] Request served")
	})
}

// Server runs the HTTP surface as a service next to the runners.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
	wg              *sync.WaitGroup

	mu      sync.RWMutex
	healthy bool
}

func (x *Server) Start() {
	log.Info("[API] Listening on ", x.http.Addr)
	x.setHealth(true)
	err := x.http.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("[API] Server stopped: ", err)
		x.setHealth(false)
	}
}

func (x *Server) Stop() {
	log.Debug("[API] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), x.shutdownTimeout)
	defer cancel()
	if err := x.http.Shutdown(ctx); err != nil {
		log.Error("[API] Error shutting down: ", err)
	}
	x.setHealth(false)
	log.Info("[API] Stopped")
	x.wg.Done()
}

func (x *Server) setHealth(healthy bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.healthy = healthy
}

func (x *Server) Health() models.ServiceHealth {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return models.ServiceHealth{
		Name:         ServerName,
		LastSyncTime: time.Now(),
		Healthy:      x.healthy,
	}
}

func NewServer(wg *sync.WaitGroup, handler *Handler) app.Service {
	config := app.Config.API
	return &Server{
		http: &http.Server{
			Addr:              config.Addr,
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: time.Duration(config.ShutdownTimeoutSecs) * time.Second,
		wg:              wg,
	}
}
