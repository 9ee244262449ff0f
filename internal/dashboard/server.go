package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/logging"
	"ContentAgent/internal/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the seen log read-only.
type Server struct {
	log    ports.SeenLog
	logger *slog.Logger
	engine *gin.Engine
}

type row struct {
	Timestamp string
	Title     string
	Link      string
}

// NewServer builds the gin engine with all routes registered.
func NewServer(seenLog ports.SeenLog, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), logging.GinMiddleware(logger))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{log: seenLog, logger: logger, engine: engine}
	engine.GET("/", s.handleLanding)
	engine.GET("/dashboard", s.handleDashboard)
	engine.GET("/api/log", s.handleLog)
	engine.GET("/api/health", handleHealth)
	return s, nil
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("dashboard shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleLanding(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", nil)
}

// handleDashboard renders an empty table when the log cannot be read.
func (s *Server) handleDashboard(c *gin.Context) {
	records, err := s.newestFirst(c.Request.Context())
	if err != nil {
		s.logger.Error("read seen log", "error", err)
	}

	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, row{Timestamp: formatTimestamp(r.Timestamp), Title: r.Title, Link: r.Link})
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Headers": []string{"timestamp", "title", "link"},
		"Logs":    rows,
	})
}

func (s *Server) handleLog(c *gin.Context) {
	records, err := s.newestFirst(c.Request.Context())
	if err != nil {
		s.logger.Error("read seen log", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "seen log unavailable"})
		return
	}
	if records == nil {
		records = []domain.SeenRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) newestFirst(ctx context.Context) ([]domain.SeenRecord, error) {
	if s.log == nil {
		return nil, nil
	}
	records, err := s.log.Records(ctx)
	if err != nil {
		return nil, err
	}
	records = slices.Clone(records)
	slices.Reverse(records)
	return records, nil
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(domain.TimestampLayout)
}
