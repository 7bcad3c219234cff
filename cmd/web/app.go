package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/format"
	"finitefield.org/stays-web/internal/handlers"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/notify"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/storefront"
)

type appConfig struct {
	TemplatesDir string
	PublicDir    string
	// Dev reparses templates on each request and disables asset caching.
	Dev       bool
	Analytics handlers.Analytics
}

// app holds the dependencies shared by every handler.
type app struct {
	cfg      appConfig
	svc      *storefront.Service
	sessions *mw.Sessions
	resolve  mw.StoreResolver
	logger   *zap.Logger

	tmplCache *template.Template
}

func newApp(cfg appConfig, svc *storefront.Service, sessions *mw.Sessions, resolve mw.StoreResolver, logger *zap.Logger) (*app, error) {
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "templates"
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}
	if resolve == nil {
		resolve = mw.CookieStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{cfg: cfg, svc: svc, sessions: sessions, resolve: resolve, logger: logger}
	if !cfg.Dev {
		// Parse templates once in production
		tc, err := a.parseTemplates()
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		a.tmplCache = tc
	}
	return a, nil
}

func (a *app) parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":    time.Now,
		"money":  format.Money,
		"plural": format.Count,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(a.cfg.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", a.cfg.TemplatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func (a *app) templates() (*template.Template, error) {
	if a.cfg.Dev {
		return a.parseTemplates()
	}
	if a.tmplCache == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return a.tmplCache, nil
}

// execute renders a named template into memory so a failure never leaves a partial body.
func (a *app) execute(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := a.templates()
	if err != nil {
		observability.FromContext(r.Context()).Error("template parse", zap.Error(err))
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec", zap.String("template", name), zap.Error(err))
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderPage executes the base layout.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, data handlers.PageData) {
	a.execute(w, r, http.StatusOK, "base", data)
}

// renderTemplate executes a fragment for htmx swaps.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	a.execute(w, r, http.StatusOK, name, data)
}

// visitor opens the per-request visitor with a collector for its notifications.
func (a *app) visitor(r *http.Request) (*storefront.Visitor, *notify.Collector) {
	notes := &notify.Collector{}
	return storefront.OpenVisitor(r.Context(), mw.StoreFromContext(r.Context()), notes), notes
}

// trigger sets HX-Trigger from the collected notifications plus extra client events.
// It must run before the body is written.
func trigger(w http.ResponseWriter, r *http.Request, notes *notify.Collector, events ...string) {
	h, err := notify.Trigger(notes.Items(), events...)
	if err != nil {
		observability.FromContext(r.Context()).Warn("encode HX-Trigger", zap.Error(err))
		return
	}
	if h != "" {
		w.Header().Set("HX-Trigger", h)
	}
}

// reject answers a failed validation: the notification travels in HX-Trigger and the
// client keeps its current DOM.
func reject(w http.ResponseWriter, r *http.Request, notes *notify.Collector) {
	trigger(w, r, notes)
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusUnprocessableEntity)
}

// done acknowledges a command with no content to swap.
func done(w http.ResponseWriter, r *http.Request, notes *notify.Collector, events ...string) {
	trigger(w, r, notes, events...)
	w.WriteHeader(http.StatusNoContent)
}

func pushURL(w http.ResponseWriter, state storefront.ViewState) {
	u := "/"
	if q := state.Query(); q != "" {
		u += "?" + q
	}
	w.Header().Set("HX-Push-Url", u)
}
