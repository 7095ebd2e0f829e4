package main

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jansaniel95/jan-eds-training/internal/block"
	"github.com/jansaniel95/jan-eds-training/internal/config"
	"github.com/jansaniel95/jan-eds-training/internal/httpx"
	custommw "github.com/jansaniel95/jan-eds-training/internal/middleware"
	"github.com/jansaniel95/jan-eds-training/internal/pages"
)

const layoutTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
</head>
<body>
<main>{{.Body}}</main>
</body>
</html>
`

type server struct {
	decorator  *block.Decorator
	contentDir string
	layout     *template.Template
	logger     *zap.Logger
}

// newServer builds the HTTP server with the middleware stack and routes.
func newServer(cfg config.Config, decorator *block.Decorator, logger *zap.Logger) *http.Server {
	s := &server{
		decorator:  decorator,
		contentDir: cfg.Content.Dir,
		layout:     template.Must(template.New("layout").Parse(layoutTemplate)),
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(custommw.Logger(logger.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", s.health)
	r.Post("/decorate", s.decorate)
	r.Get("/pages/{slug}", s.page)

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// decorate accepts an HTML fragment and returns it with every product block
// decorated.
func (s *server) decorate(w http.ResponseWriter, r *http.Request) {
	doc, err := goquery.NewDocumentFromReader(r.Body)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_html", err.Error(), http.StatusBadRequest))
		return
	}

	s.decorator.DecorateAll(r.Context(), doc)

	out, err := doc.Find("body").Html()
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("render_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// page renders a local content page and decorates the blocks it hosts.
func (s *server) page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pg, err := pages.Load(s.contentDir, slug)
	if errors.Is(err, pages.ErrNotFound) {
		httpx.WriteError(r.Context(), w, httpx.NewError("page_not_found", fmt.Sprintf("no page for %q", slug), http.StatusNotFound))
		return
	}
	if err != nil {
		s.logger.Error("page load failed", zap.String("slug", slug), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("page_failed", "unable to render page", http.StatusInternalServerError))
		return
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pg.Body))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("page_failed", "unable to render page", http.StatusInternalServerError))
		return
	}
	s.decorator.DecorateAll(r.Context(), doc)
	body, err := doc.Find("body").Html()
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("page_failed", "unable to render page", http.StatusInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title       string
		Description string
		Body        template.HTML
	}{
		Title:       pg.Title,
		Description: pg.Description,
		Body:        template.HTML(body),
	}
	if err := s.layout.Execute(w, data); err != nil {
		s.logger.Error("layout execution failed", zap.String("slug", slug), zap.Error(err))
	}
}
