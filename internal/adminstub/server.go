// Package adminstub is an in-process stand-in for the identity platform's
// admin API. It stores realms, trust anchors and identity providers in
// SQLite and implements just enough of the REST surface for fedctl and
// the console views to be exercised end to end. Federation protocol
// behaviour (trust chain resolution, entity statements) is not emulated.
package adminstub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/pkg/config"
)

// Server serves the stub admin API over HTTP.
type Server struct {
	server       *http.Server
	store        *store.GORMStore
	config       config.StubConfig
	shutdownOnce sync.Once

	mu       sync.Mutex
	listener net.Listener
}

// NewServer seeds the configured realms and returns a stopped server.
func NewServer(ctx context.Context, cfg config.StubConfig, st *store.GORMStore, version string) (*Server, error) {
	for _, realm := range cfg.Realms {
		if err := st.EnsureRealm(ctx, realm); err != nil {
			return nil, fmt.Errorf("failed to seed realm %s: %w", realm, err)
		}
		logger.Debug("Realm ready", logger.Realm(realm))
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      NewRouter(st, RouterOptions{Version: version}),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		store:  st,
		config: cfg,
	}, nil
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled or the listener fails. Cancellation
// triggers a graceful shutdown bounded by the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("stub server failed to listen: %w", err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Stub admin API listening", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Stub server shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("stub server failed: %w", err)
	}
}

// Stop shuts the server down. It is safe to call more than once.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("stub server shutdown error: %w", err)
			logger.Error("Stub server shutdown error", logger.Err(err))
			return
		}
		logger.Info("Stub server stopped gracefully")
	})
	return shutdownErr
}

// Addr returns the bound address once Start is listening, or "".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.config.ShutdownTimeout > 0 {
		return s.config.ShutdownTimeout
	}
	return config.DefaultShutdownTimeout
}
