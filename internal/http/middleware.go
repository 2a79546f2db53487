package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
)

// Authenticator is the slice of the auth service the middleware needs.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, allowed ...domainauth.Role) (domainauth.Principal, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that gates requests on a verified bearer
// token. With allowed roles given, a verified token of another role answers
// 403; every verification failure answers 401 with a code naming the reason.
// Infrastructure failures (revocation store down) answer a generic 500.
func RequireAuth(auth Authenticator, allowed ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.Authenticate(r.Context(), BearerToken(r), allowed...)
			if err != nil {
				writeAuthError(w, err)
				return
			}
			ctx := SetPrincipalInContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header. An absent or
// non-Bearer header yields the empty string, which the gate maps to
// ErrMissingToken.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainauth.ErrMissingToken):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "missing_token", Err: err})
	case errors.Is(err, domainauth.ErrLoggedOut):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "logged_out", Err: err})
	case errors.Is(err, domainauth.ErrTokenExpired):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "token_expired", Err: err})
	case errors.Is(err, domainauth.ErrInvalidToken):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_token", Err: err})
	case errors.Is(err, domainauth.ErrForbidden):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: err})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("internal server error"),
		})
	}
}
