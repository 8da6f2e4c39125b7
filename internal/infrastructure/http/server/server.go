package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"webshoptech/szamlabridge/internal/infrastructure/http/middleware"
)

// Server exposes the invoice bridge endpoints: the order-created webhook,
// the invoice download route and a health probe.
type Server struct {
	log        *slog.Logger
	httpServer *http.Server
	auth       *middleware.JWTAuthenticator

	shutdownTimeout time.Duration
}

// Options holds server construction parameters. The two handler funcs are
// required; Auth is optional.
type Options struct {
	Addr            string
	Logger          *slog.Logger
	Auth            *middleware.JWTAuthenticator
	InvoiceDownload http.HandlerFunc
	OrderCreated    http.HandlerFunc
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// New creates the server with the bridge routes mounted.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.InvoiceDownload == nil || opts.OrderCreated == nil {
		return nil, errors.New("invoice download and order created handlers are required")
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Auth != nil {
		r.Use(opts.Auth.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/invoice/{invoiceNumber}/download", opts.InvoiceDownload)
	r.Post("/events/order-created", opts.OrderCreated)

	return &Server{
		log: opts.Logger,
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		auth:            opts.Auth,
		shutdownTimeout: opts.ShutdownTimeout,
	}, nil
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

// Close releases server resources.
func (s *Server) Close() {
	if s.auth != nil {
		s.auth.Close()
	}
}
