package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saint0x/gitreadme/pkg/ai"
	"github.com/saint0x/gitreadme/pkg/config"
	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/readme"
)

const (
	requestIDHeader   = "X-Request-ID"
	fingerprintHeader = "X-Prompt-Fingerprint"

	defaultShutdownTimeout = 5 * time.Second
)

// ReadmeService interface for the generation pipeline
type ReadmeService interface {
	Generate(ctx context.Context, repoURL string) (*readme.Result, error)
}

// Server exposes the README pipeline over HTTP
type Server struct {
	logger  *log.Logger
	service ReadmeService
	cfg     *config.Environment
	engine  *gin.Engine
	srv     *http.Server
	addr    net.Addr
	mu      sync.Mutex
}

type generateRequest struct {
	RepoURL string `json:"repoUrl"`
}

type generateResponse struct {
	Readme string `json:"readme"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a new server instance
func New(logger *log.Logger, service ReadmeService, cfg *config.Environment) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if service == nil {
		return nil, fmt.Errorf("readme service is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if logger.IsDebug() {
		logger.Info("Initializing server with components:")
		logger.Info("- README Service: ✓")
		logger.Info("- Request timeout: %s", cfg.RequestTimeout)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		logger:  logger,
		service: service,
		cfg:     cfg,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the configured gin engine
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))

	router.GET("/health", s.handleHealth)
	router.POST("/generate-readme", s.handleGenerate)
	router.POST("/api/generate-readme", s.handleGenerate)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{requestIDHeader, fingerprintHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLogger tags every request with an id and logs its outcome
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		logger := s.logger.WithField("request_id", id)
		status := c.Writer.Status()
		msg := "%s %s -> %d (%s)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond)}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(msg, args...)
		case status >= http.StatusBadRequest:
			logger.Warning(msg, args...)
		default:
			logger.Info(msg, args...)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	res, err := s.service.Generate(ctx, req.RepoURL)
	if err != nil {
		status, body := errorFor(err)
		c.JSON(status, body)
		return
	}

	c.Header(fingerprintHeader, res.Fingerprint)
	c.JSON(http.StatusOK, generateResponse{Readme: res.Readme})
}

// errorFor maps a pipeline error to its HTTP status and envelope
func errorFor(err error) (int, errorResponse) {
	var verr *readme.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorResponse{Error: verr.Message}
	}

	msg := err.Error()
	var genErr *ai.GenerationError
	switch {
	case errors.As(err, &genErr):
		msg = genErr.Message()
	case errors.Is(err, context.DeadlineExceeded):
		msg = "request timed out"
	}
	return http.StatusInternalServerError, errorResponse{Error: "Failed to generate README: " + msg}
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	ln, fellBack, err := listen(s.cfg.Host, s.cfg.Port)
	if err != nil {
		return err
	}
	if fellBack {
		s.logger.Warning("Port %s is in use, listening on %s instead", s.cfg.Port, ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Success("Server is running on %s", ln.Addr())
	s.logger.Debug("Endpoint: http://%s/generate-readme", ln.Addr())

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("Server error: %v", err)
		return fmt.Errorf("server error: %w", err)
	}
}

// Addr is the bound listener address, nil until Start has bound it
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// listen binds host:port and falls back to an ephemeral port when it is taken
func listen(host, port string) (net.Listener, bool, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, port))
	if err == nil {
		return ln, false, nil
	}
	ln, fbErr := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if fbErr != nil {
		return nil, false, fmt.Errorf("failed to listen on %s: %w", net.JoinHostPort(host, port), errors.Join(err, fbErr))
	}
	return ln, true, nil
}

// Stop drains in-flight requests for at most the configured shutdown timeout
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.srv
	s.srv, s.addr = nil, nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Shutdown did not finish within %s: %v", timeout, err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.logger.Success("Server stopped")
	return nil
}
