// Package session identifies browser visitors and keeps one weight panel
// controller per visitor.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/Zachkp/portfolio/internal/logger"
)

const (
	visitorKey = "visitor_id"

	defaultCookieName = "portfolio_visitor"
	minSecretLength   = 32
)

// CookieConfig configures the visitor cookie.
type CookieConfig struct {
	Secret string
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Cookies issues and reads the signed visitor cookie. The cookie only
// carries an opaque id; it is not authentication.
type Cookies struct {
	store *sessions.CookieStore
	name  string
	log   logger.Logger
}

// NewCookies creates a cookie manager. An empty secret gets a random key,
// which means visitor ids do not survive a restart.
func NewCookies(cfg CookieConfig, log logger.Logger) *Cookies {
	if log == nil {
		log = logger.NewNop()
	}

	key := []byte(cfg.Secret)
	switch {
	case len(key) == 0:
		key = securecookie.GenerateRandomKey(minSecretLength)
		log.Warn("SESSION_SECRET not set; using a random key for this process")
	case len(key) < minSecretLength:
		log.Warn("Session secret is weak; 32+ random chars recommended",
			logger.Int("length", len(key)))
	}

	name := cfg.Name
	if name == "" {
		name = defaultCookieName
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Cookies{store: store, name: name, log: log}
}

// VisitorID returns the visitor id carried by r, issuing a new id and
// cookie on w when there is none or the cookie cannot be decoded.
func (c *Cookies) VisitorID(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := c.store.Get(r, c.name)
	if err != nil {
		// Tampered or signed with an old key: start over with a fresh session.
		c.log.Debug("Discarding unreadable visitor cookie", logger.Error(err))
		sess, err = c.store.New(r, c.name)
		if sess == nil {
			return "", fmt.Errorf("new session: %w", err)
		}
	}

	if id, ok := sess.Values[visitorKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[visitorKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save visitor cookie: %w", err)
	}
	return id, nil
}
