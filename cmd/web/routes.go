package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/observability"
)

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware(nil))
	r.Use(mw.Logger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.HTMX)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(a.cfg.PublicDir, "assets"), a.cfg.Dev))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		r.Use(mw.CSRF(a.sessions.Secure()))
		r.Use(mw.VisitorStore(a.resolve))

		r.Get("/", a.handleHome)
		r.Get("/listings", a.handleListings)
		r.Get("/listings/more", a.handleLoadMore)
		r.Post("/favorites/{id}", a.handleToggleFavorite)

		r.Get("/properties/{id}", a.handleProperty)
		r.Post("/properties/{id}/reserve", a.handleReserve)

		r.Post("/search", a.handleSearch)
		r.Post("/search/clear", a.handleSearchClear)
		r.Post("/search/guests", a.handleSearchGuests)

		r.Post("/filters/apply", a.handleFiltersApply)
		r.Post("/filters/clear", a.handleFiltersClear)
		r.Post("/filters/rooms", a.handleFilterRooms)

		r.Post("/preferences/theme", a.handleToggleTheme)
		r.Post("/auth/{mode}", a.handleAuth)
		r.Post("/auth/social/{provider}", a.handleSocialAuth)
		r.Post("/announcements/{topic}", a.handleAnnouncement)
	})

	return r
}
