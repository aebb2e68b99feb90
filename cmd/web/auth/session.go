package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	SessionName       = "diamondband_session"
	FlashName         = "diamondband_flash"
	UserIDKey         = "user_id"
	UsernameKey       = "username"
	SessionCreatedKey = "created_at"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
)

type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	if secret == "" {
		slog.Warn("SESSION_SECRET not set; admin sessions will not survive a restart")
		secret = generateSecret()
	}
	return &SessionManager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func (sm *SessionManager) options(r *http.Request, maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS(r),
	}
}

// SaveSession signs the admin in.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, r *http.Request, userID, username string) error {
	session, _ := sm.store.Get(r, SessionName)
	session.Values[UserIDKey] = userID
	session.Values[UsernameKey] = username
	session.Values[SessionCreatedKey] = time.Now().Unix()
	session.Options = sm.options(r, 86400*7)
	return session.Save(r, w)
}

func (sm *SessionManager) GetSession(r *http.Request) (userID, username string, err error) {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		slog.Warn("failed to decode session", "error", err, "host", r.Host, "has_cookie", cookieErr == nil)
		return "", "", err
	}

	uid, ok := session.Values[UserIDKey].(string)
	if !ok || uid == "" {
		return "", "", ErrNotAuthenticated
	}
	uname, ok := session.Values[UsernameKey].(string)
	if !ok {
		return "", "", ErrNotAuthenticated
	}
	return uid, uname, nil
}

func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	_, _, err := sm.GetSession(r)
	return err == nil
}

// GetSessionCreatedAt returns the time the session was created.
// Returns zero time if the session is missing or invalid.
func (sm *SessionManager) GetSessionCreatedAt(r *http.Request) time.Time {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		return time.Time{}
	}
	unix, ok := session.Values[SessionCreatedKey].(int64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}

func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := sm.store.Get(r, SessionName)
	session.Options = sm.options(r, -1)
	return session.Save(r, w)
}

// AddFlash queues a one-time notice for the next page render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	session, _ := sm.store.Get(r, FlashName)
	session.Options = sm.options(r, 300)
	session.AddFlash(msg)
	return session.Save(r, w)
}

// Flashes returns and clears the queued notices.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := sm.store.Get(r, FlashName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	session.Options = sm.options(r, 300)
	if err := session.Save(r, w); err != nil {
		slog.Warn("failed to clear flashes", "error", err)
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
