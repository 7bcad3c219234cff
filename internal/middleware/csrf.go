package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"
)

const (
	csrfCookieName = "csrf_token"
	csrfCookieTTL  = 24 * time.Hour
	// CSRFHeader carries the token on unsafe requests; htmx sends it from the body's hx-headers.
	CSRFHeader = "X-CSRF-Token"
)

// CSRF enforces a double-submit token bound to the session: the token lives in the session,
// is mirrored into a script-readable cookie, and unsafe requests must echo it in CSRFHeader.
// It must run after the session middleware.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			if s.CSRFToken == "" {
				s.CSRFToken = newCSRFToken()
				s.MarkDirty()
			}
			token := s.CSRFToken

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil || cookie.Value != token {
				issueCSRFCookie(w, token, secure)
			}

			if !isSafeMethod(r.Method) {
				if !sameToken(r.Header.Get(CSRFHeader), token) || err != nil || !sameToken(cookie.Value, token) {
					WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func issueCSRFCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(csrfCookieTTL),
	})
}

func sameToken(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// CSRFToken returns the current session's token for embedding in pages.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
