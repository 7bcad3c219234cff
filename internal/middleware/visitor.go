package middleware

import (
	"net/http"

	"finitefield.org/stays-web/internal/kvstore"
)

// StoreResolver picks the key-value cache backing a visitor's session.
type StoreResolver func(sd *SessionData) kvstore.Store

// CookieStore keeps visitor data inside the session cookie itself.
func CookieStore() StoreResolver {
	return func(sd *SessionData) kvstore.Store { return sd.PrefsStore() }
}

// SharedStore keeps visitor data in a process-wide backend, namespaced per session id.
func SharedStore(shared kvstore.Store, prefix string) StoreResolver {
	return func(sd *SessionData) kvstore.Store {
		return kvstore.WithPrefix(shared, kvstore.VisitorPrefix(prefix, sd.ID))
	}
}

// VisitorStore attaches the visitor's key-value cache to the request. It must run after
// the session middleware.
func VisitorStore(resolve StoreResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := resolve(GetSession(r))
			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))
		})
	}
}
