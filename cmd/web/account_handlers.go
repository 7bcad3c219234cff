package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/booking"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/storefront"
)

const eventAuthClose = "auth:close"

// handleToggleTheme flips the visitor's theme; the client applies it on the theme event.
func (a *app) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	v, notes := a.visitor(r)
	theme, err := a.svc.ToggleTheme(r.Context(), v)
	if err != nil {
		observability.FromContext(r.Context()).Error("toggle theme", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "could not save theme")
		return
	}
	done(w, r, notes, "theme:"+string(theme))
}

// handleAuth simulates the login and signup forms.
func (a *app) handleAuth(w http.ResponseWriter, r *http.Request) {
	mode, err := booking.ParseAuthMode(chi.URLParam(r, "mode"))
	if err != nil {
		mw.WriteError(w, r, http.StatusNotFound, "unknown auth mode")
		return
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	v, notes := a.visitor(r)
	creds := booking.Credentials{Email: r.PostForm.Get("email"), Password: r.PostForm.Get("password")}
	if err := a.svc.Authenticate(v, mode, creds); err != nil {
		reject(w, r, notes)
		return
	}
	done(w, r, notes, eventAuthClose)
}

// handleSocialAuth acknowledges a social sign-in button.
func (a *app) handleSocialAuth(w http.ResponseWriter, r *http.Request) {
	v, notes := a.visitor(r)
	if err := a.svc.SocialAuth(v, chi.URLParam(r, "provider")); err != nil {
		if errors.Is(err, storefront.ErrUnknownProvider) {
			mw.WriteError(w, r, http.StatusNotFound, "unknown provider")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "could not start sign-in")
		return
	}
	done(w, r, notes, eventAuthClose)
}

// handleAnnouncement acknowledges an informational link with a toast.
func (a *app) handleAnnouncement(w http.ResponseWriter, r *http.Request) {
	v, notes := a.visitor(r)
	if err := a.svc.Announce(v, chi.URLParam(r, "topic")); err != nil {
		if errors.Is(err, storefront.ErrUnknownTopic) {
			mw.WriteError(w, r, http.StatusNotFound, "unknown topic")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "could not open link")
		return
	}
	done(w, r, notes)
}
