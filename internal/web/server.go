// Package web serves the calculator pages, the HTMX result fragments and the
// JSON API on top of a tariff.Engine.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/metrics"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the handler dependencies. It is safe for concurrent use.
type Server struct {
	engine    *tariff.Engine
	logger    *zap.Logger
	metrics   *metrics.Metrics
	templates *template.Template
}

// New parses the embedded templates. logger and m may be nil.
func New(engine *tariff.Engine, logger *zap.Logger, m *metrics.Metrics) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("web: engine is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	templates, err := template.New("").Funcs(template.FuncMap{
		"money":     money,
		"tierTable": newTierTable,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		engine:    engine,
		logger:    logger,
		metrics:   m,
		templates: templates,
	}, nil
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handleHome)
	r.Get("/calculate-cost-live", s.handleCostLive)
	r.Get("/calculate-units-live", s.handleUnitsLive)
	r.Get("/calculate-cost", s.handleCostPage)
	r.Get("/calculate-units", s.handleUnitsPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cost", s.handleAPICost)
		r.Get("/units", s.handleAPIUnits)
		r.Get("/schedules", s.handleAPISchedules)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
