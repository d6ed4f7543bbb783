package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lyvest/lyvest-backend/pkg/logger"
)

const sessionUserHeader = "X-Session-User"

type contextKey string

const ctxSessionUser contextKey = "session_user"

// SessionUser lifts the opaque session user id from the request header into
// the context. Requests without one stay anonymous; identity verification
// happens upstream of this service.
func SessionUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(sessionUserHeader))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxSessionUser, userID)
			if logg != nil {
				ctx = logg.WithSessionUser(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionUserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionUser).(string); ok {
		return v
	}
	return ""
}
