// Package server exposes the optimizer over HTTP with gin.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/importer"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/report"
)

// Request limits. Together they bound the work one request can ask for.
const (
	MinStep     = 0.5     // mm
	MaxQuantity = 1000    // per cut-list line
	MaxPieces   = 5000    // after quantity expansion
	MaxScanGrid = 5000000 // scan positions per board: (width/step) * (height/step)
)

var (
	// ErrInvalidPiece is reported for a piece with a non-positive dimension or
	// a negative quantity.
	ErrInvalidPiece = errors.New("invalid piece")
	// ErrTooLarge is reported when a request exceeds one of the request limits.
	ErrTooLarge = errors.New("request too large")
)

// PieceRequest is one cut-list line. Thickness 0 means importer.DefaultThickness
// and Quantity 0 means one piece.
type PieceRequest struct {
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
	Quantity  int     `json:"quantity"`
}

// OptimizeRequest is the body of /api/optimize and /api/report. Omitted
// boards and parameters fall back to the server configuration.
type OptimizeRequest struct {
	Pieces   []PieceRequest        `json:"pieces"`
	Boards   []model.BoardTemplate `json:"boards,omitempty"`
	Kerf     *float64              `json:"kerf,omitempty"`
	Margin   *float64              `json:"margin,omitempty"`
	Step     *float64              `json:"step,omitempty"`
	Parallel *bool                 `json:"parallel,omitempty"`
}

// Server serves the optimization API.
type Server struct {
	cfg     config.Config
	logger  logr.Logger
	router  *gin.Engine
	metrics *metrics
}

// New builds a Server whose requests default to cfg.
func New(cfg config.Config, logger logr.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger, metrics: newMetrics()}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))
	api := r.Group("/api", s.countRequests())
	api.POST("/optimize", s.handleOptimize)
	api.POST("/report", s.handleReport)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.V(1).Info("Request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.metrics.observeRequest(c.Writer.Status())
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptimize(c *gin.Context) {
	result, ok := s.optimize(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleReport(c *gin.Context) {
	result, ok := s.optimize(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// optimize decodes the request and runs the optimizer. On failure it has
// already written the error response and returns false.
func (s *Server) optimize(c *gin.Context) (model.Result, bool) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.Result{}, false
	}

	cfg := s.requestConfig(req)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.Result{}, false
	}
	if err := checkLimits(cfg, req.Pieces); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.Result{}, false
	}

	pieces, err := expandPieces(req.Pieces)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.Result{}, false
	}

	if err := engine.CheckInput(pieces, cfg.Boards); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return model.Result{}, false
	}

	opt := engine.New(cfg.Settings(), engine.WithLogger(s.logger))
	start := time.Now()
	result, err := opt.Optimize(c.Request.Context(), pieces, cfg.Boards)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return model.Result{}, false
	}
	s.metrics.observeResult(result, time.Since(start))
	return result, true
}

// requestConfig overlays the request's boards and parameters on the server config.
func (s *Server) requestConfig(req OptimizeRequest) config.Config {
	cfg := s.cfg
	if len(req.Boards) > 0 {
		cfg.Boards = req.Boards
	}
	if req.Kerf != nil {
		cfg.Kerf = *req.Kerf
	}
	if req.Margin != nil {
		cfg.Margin = *req.Margin
	}
	if req.Step != nil {
		cfg.Step = *req.Step
	}
	if req.Parallel != nil {
		cfg.Parallel = *req.Parallel
	}
	return cfg
}

// checkLimits rejects requests whose scan grid or piece count exceeds the
// request limits. It runs before any piece is expanded.
func checkLimits(cfg config.Config, reqs []PieceRequest) error {
	if cfg.Step < MinStep {
		return fmt.Errorf("%w: step %g mm is below the minimum of %g mm", ErrTooLarge, cfg.Step, MinStep)
	}
	for _, b := range cfg.Boards {
		if cells := (b.Width / cfg.Step) * (b.Height / cfg.Step); cells > MaxScanGrid {
			return fmt.Errorf("%w: board %s has %.0f scan positions at step %g mm, limit is %d",
				ErrTooLarge, b, cells, cfg.Step, MaxScanGrid)
		}
	}
	total := 0
	for i, r := range reqs {
		if r.Quantity > MaxQuantity {
			return fmt.Errorf("%w: piece %d (%q) has quantity %d, limit is %d", ErrTooLarge, i+1, r.Name, r.Quantity, MaxQuantity)
		}
		total += max(r.Quantity, 1)
	}
	if total > MaxPieces {
		return fmt.Errorf("%w: %d pieces requested, limit is %d", ErrTooLarge, total, MaxPieces)
	}
	return nil
}

func expandPieces(reqs []PieceRequest) ([]model.Piece, error) {
	var pieces []model.Piece
	for i, r := range reqs {
		if r.Width <= 0 || r.Height <= 0 || r.Thickness < 0 || r.Quantity < 0 {
			return nil, fmt.Errorf("%w: piece %d (%q): width and height must be > 0, thickness and quantity >= 0", ErrInvalidPiece, i+1, r.Name)
		}
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("Piece %d", i+1)
		}
		thickness := r.Thickness
		if thickness == 0 {
			thickness = importer.DefaultThickness
		}
		pieces = append(pieces, importer.ExpandQuantity(name, r.Width, r.Height, thickness, r.Quantity)...)
	}
	return pieces, nil
}
