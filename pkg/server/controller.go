// Package server owns the lifecycle of the single background static-file
// server: an explicit Stopped -> Starting -> Running -> Stopping state
// machine with bounded graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/servr-dev/servr/pkg/logging"
	"github.com/servr-dev/servr/pkg/server/httpx"
	"github.com/servr-dev/servr/pkg/site"
)

// State is the controller's lifecycle state. Starting and Stopping are
// transient and only ever held while the controller mutex is locked, so
// external observers see Stopped or Running.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Session is the in-memory record of the currently running server
// instance. Root and Port are immutable while the session is active.
type Session struct {
	ID        string
	Root      string
	Port      int
	StartedAt time.Time
}

// URL returns the localhost URL the session serves at.
func (s Session) URL() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port)
}

// PageURL returns the URL for a path relative to the served root.
func (s Session) PageURL(relative string) string {
	return s.URL() + relative
}

// Controller owns at most one background static-file server. Start and
// Stop are mutually exclusive through the state machine; callers never
// take locks themselves.
type Controller struct {
	mu      sync.Mutex
	state   State
	session Session

	httpServer *http.Server
	serveDone  chan struct{}
	failure    chan error

	host         string
	drainTimeout time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithHost sets the listen address (default 127.0.0.1).
func WithHost(host string) Option {
	return func(c *Controller) { c.host = host }
}

// WithDrainTimeout bounds how long Stop waits for in-flight requests.
func WithDrainTimeout(d time.Duration) Option {
	return func(c *Controller) { c.drainTimeout = d }
}

// WithHTTPTimeouts sets read/write timeouts on the underlying server.
func WithHTTPTimeouts(read, write time.Duration) Option {
	return func(c *Controller) {
		c.readTimeout = read
		c.writeTimeout = write
	}
}

// WithLogger overrides the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a stopped Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		host:         "127.0.0.1",
		drainTimeout: 5 * time.Second,
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		logger:       logging.NewLogger("server", zerolog.InfoLevel),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the background server serving static files rooted at root
// on the given port. Valid only from Stopped. The root is validated before
// any socket work; bind failures return the controller to Stopped.
func (c *Controller) Start(ctx context.Context, root string, port int) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStopped {
		return Session{}, NewAlreadyRunningError(c.session)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Session{}, WrapDirectoryInvalid(err)
	}
	if err := site.ValidateRoot(absRoot); err != nil {
		return Session{}, WrapDirectoryInvalid(err)
	}

	c.state = StateStarting

	addr := net.JoinHostPort(c.host, strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		c.state = StateStopped
		c.logger.Error().Err(err).Str("addr", addr).Msg("Listener bind failed")
		return Session{}, WrapServerStart(err)
	}

	srv := &http.Server{
		Handler:      httpx.Chain(site.Handler(absRoot)),
		ReadTimeout:  c.readTimeout,
		WriteTimeout: c.writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	failure := make(chan error, 1)
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failure <- fmt.Errorf("serve: %w", err)
		}
	}()

	c.httpServer = srv
	c.serveDone = done
	c.failure = failure
	c.session = Session{
		ID:        uuid.NewString(),
		Root:      absRoot,
		Port:      ln.Addr().(*net.TCPAddr).Port,
		StartedAt: time.Now(),
	}
	c.state = StateRunning

	c.logger.Info().
		Str("session", c.session.ID).
		Str("root", absRoot).
		Int("port", c.session.Port).
		Msg("Server started")

	return c.session, nil
}

// Stop drains in-flight requests and terminates the background server,
// blocking until the port is released. Calling Stop when already stopped
// is a no-op. If the drain timeout elapses the server is force-closed and
// ErrForcedStop is returned; the state is Stopped either way.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStopped {
		return nil
	}

	c.state = StateStopping
	c.logger.Info().Str("session", c.session.ID).Msg("Stopping server, draining in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(ctx, c.drainTimeout)
	defer cancel()

	forced := false
	if err := c.httpServer.Shutdown(shutdownCtx); err != nil {
		forced = true
		c.logger.Warn().Err(err).Msg("Graceful drain timed out, forcing close")
		_ = c.httpServer.Close()
	}

	// Serve has returned by now (Shutdown or Close unblocks it); wait so
	// the port is fully released before reporting Stopped.
	<-c.serveDone

	c.httpServer = nil
	c.serveDone = nil
	c.failure = nil
	c.session = Session{}
	c.state = StateStopped

	c.logger.Info().Msg("Server stopped")

	if forced {
		return WithErrorCode(ErrForcedStop, errorCodeForcedStop)
	}
	return nil
}

// IsRunning reports whether a session is active.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateRunning
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the active session, if any.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.state == StateRunning
}

// Failure returns a channel that receives the background server's error
// if it exits unexpectedly. The channel is nil when no session is active.
func (c *Controller) Failure() <-chan error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}
