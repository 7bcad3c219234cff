package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/kvstore"
	"finitefield.org/stays-web/internal/observability"
)

const (
	defaultSessionCookie   = "STAYS_WEB_SESSION"
	defaultSessionLifetime = 30 * 24 * time.Hour
)

// ErrInvalidSessionConfig indicates missing cookie keys.
var ErrInvalidSessionConfig = errors.New("session: invalid config")

// SessionData is the visitor state carried in the signed session cookie.
type SessionData struct {
	ID        string            `json:"id"`
	CSRFToken string            `json:"csrf,omitempty"`
	Prefs     map[string]string `json:"prefs,omitempty"`
	Welcomed  bool              `json:"welcomed,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// Dirty reports whether the session changed during this request.
func (s *SessionData) Dirty() bool { return s.dirty }

// PrefsStore exposes the cookie-held preferences as a key-value cache.
func (s *SessionData) PrefsStore() *kvstore.Map {
	if s.Prefs == nil {
		s.Prefs = make(map[string]string)
	}
	return kvstore.NewMap(s.Prefs, s.MarkDirty)
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	HashKey    []byte
	BlockKey   []byte
	Secure     bool
	Lifetime   time.Duration
}

// Sessions loads and persists SessionData through a securecookie codec.
type Sessions struct {
	cfg   SessionConfig
	codec *securecookie.SecureCookie
}

// NewSessions builds a session manager. The hash key is required; the block key enables
// encryption when set.
func NewSessions(cfg SessionConfig) (*Sessions, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidSessionConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultSessionCookie
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultSessionLifetime
	}
	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.Lifetime.Seconds()))
	return &Sessions{cfg: cfg, codec: codec}, nil
}

// Secure reports whether cookies are restricted to https.
func (m *Sessions) Secure() bool { return m.cfg.Secure }

// Middleware loads or initializes a session and stores it in request context.
func (m *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := m.read(r)
		if sd.ID == "" {
			now := time.Now().UTC()
			sd = &SessionData{
				ID:        uuid.NewString(),
				CSRFToken: newCSRFToken(),
				CreatedAt: now,
				UpdatedAt: now,
				dirty:     true,
			}
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// ensure cookie is set just before first write if needed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				m.write(w, r, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			m.write(w, r, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

func (m *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := m.codec.Decode(m.cfg.CookieName, c.Value, &sd); err != nil {
		observability.FromContext(r.Context()).Debug("session: discarding undecodable cookie", zap.Error(err))
		return &SessionData{}, false
	}
	return &sd, true
}

func (m *Sessions) write(w http.ResponseWriter, r *http.Request, sd *SessionData) {
	encoded, err := m.codec.Encode(m.cfg.CookieName, sd)
	if err != nil {
		observability.FromContext(r.Context()).Error("session: encode cookie", zap.Error(err))
		return
	}
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.cfg.Lifetime.Seconds()),
	})
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
