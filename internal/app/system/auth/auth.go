// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey   = "is_authenticated"
	userIDKey   = "user_id"
	userNameKey = "user_name"
	userTypeKey = "user_type"
)

// SessionUser is what we cache in the session cookie and inject into
// r.Context(). Handlers read identity from here and nowhere else.
type SessionUser struct {
	ID       string
	Name     string
	UserType string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing the
// session cookie. For tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager owns the cookie store and the session read/write paths.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager backed by a cookie store.
// An empty sessionKey is replaced with a random key, which invalidates
// all sessions on restart; fine for dev, wrong for production.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if name == "" {
		return nil, fmt.Errorf("session name is empty")
	}
	if sessionKey == "" {
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not configured; generated a volatile key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// LoadSessionUser injects the user into context if the session cookie
// marks them authenticated. It never rejects; the gates do that.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:       getString(sess, userIDKey),
				Name:     getString(sess, userNameKey),
				UserType: getString(sess, userTypeKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn writes the authenticated user into the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userTypeKey] = u.UserType
	return sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	delete(sess.Values, userNameKey)
	delete(sess.Values, userTypeKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
