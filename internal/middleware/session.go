package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/hotelbook/booking-api/internal/pkg/response"
)

// SessionCookieName is the cookie carrying the signed booking session id.
const SessionCookieName = "booking_session"

const sessionIDKey contextKey = "booking_session_id"

type contextKey string

// ErrNoSession is returned when the request carries no valid booking session cookie.
var ErrNoSession = errors.New("booking session cookie missing or invalid")

// SessionCodec signs and encrypts booking session ids into cookies.
type SessionCodec struct {
	sc     *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// NewSessionCodec builds a codec. Empty keys are replaced with random ones,
// which invalidates outstanding cookies on restart.
func NewSessionCodec(hashKey, blockKey []byte, maxAge time.Duration, secure bool) *SessionCodec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(64)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))
	return &SessionCodec{sc: sc, maxAge: maxAge, secure: secure}
}

// Write sets the session cookie for sessionID.
func (c *SessionCodec) Write(w http.ResponseWriter, sessionID string) error {
	encoded, err := c.sc.Encode(SessionCookieName, map[string]string{"id": sessionID})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session id from the request cookie.
func (c *SessionCodec) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoSession
	}
	value := map[string]string{}
	if err := c.sc.Decode(SessionCookieName, cookie.Value, &value); err != nil {
		return "", ErrNoSession
	}
	id := value["id"]
	if id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// Clear expires the session cookie.
func (c *SessionCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireSession rejects requests without a valid session cookie and
// stores the session id in the request context.
func RequireSession(codec *SessionCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := codec.Read(r)
			if err != nil {
				response.Unauthorized(w, "Start a booking session first")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID stores a booking session id in ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// GetSessionID extracts the booking session id from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
