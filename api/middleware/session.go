package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
)

const (
	SessionHeader = "X-Quote-Session"
	SessionCookie = "quote_session"
)

type sessionRegistry interface {
	Get(id string) (*cart.Store, bool)
	Create() (string, *cart.Store)
}

// SessionOptions tune the session cookie.
type SessionOptions struct {
	CookieSecure bool
	CookieMaxAge time.Duration
}

// Session binds the visitor's cart store to the request context and echoes the id in
// the header and cookie. Only POST creates a session; other requests without a known id
// see a detached empty cart and leave the registry untouched.
func Session(registry sessionRegistry, opts SessionOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(sessionIDFromRequest(r))
			store, ok := registry.Get(id)
			created := false
			if !ok {
				if r.Method != http.MethodPost {
					next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), "", cart.NewStore())))
					return
				}
				id, store = registry.Create()
				created = true
			}

			w.Header().Set(SessionHeader, id)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(opts.CookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   opts.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSession(r.Context(), id, store)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
				if created {
					logg.Debug(ctx, "session.created")
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
