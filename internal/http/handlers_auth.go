package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sb-patel/notification-system-backend/internal/data"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

// AuthHandlers provides HTTP handlers for sign-up, sign-in, and logout. The
// same handlers serve both roles; the role comes from the route, never from
// the request body.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// SignUp handles POST /api/users/signup and POST /api/admins/signup.
func (h *AuthHandlers) SignUp(role domainauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.SignUpRequest
		if !DecodeJSON(w, r, &req) {
			return
		}

		p, err := h.Svc.SignUp(r.Context(), role, &req)
		if err != nil {
			if errors.Is(err, data.ErrEmailExists) {
				WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_exists", Err: err})
				return
			}
			// the request was already validated shallowly by the model;
			// remaining validation failures surface here
			if verr := req.Validate(); verr != nil {
				WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: verr})
				return
			}
			h.logger().Error("sign-up failed", "error", err, "role", role)
			writeInternalError(w)
			return
		}

		WriteJSON(w, http.StatusCreated, p)
	}
}

// SignIn handles POST /api/users/signin and POST /api/admins/signin.
// The response carries the principal and a fresh bearer token.
func (h *AuthHandlers) SignIn(role domainauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.SignInRequest
		if !DecodeJSON(w, r, &req) {
			return
		}

		res, err := h.Svc.SignIn(r.Context(), role, &req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
				return
			}
			if verr := req.Validate(); verr != nil {
				WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: verr})
				return
			}
			h.logger().Error("sign-in failed", "error", err, "role", role)
			writeInternalError(w)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"token": res.Token,
			"user":  res.Principal,
		})
	}
}

// Logout handles POST /api/auth/logout. The presented token is blacklisted
// until its natural expiry; repeating the call is harmless.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.Logout(r.Context(), BearerToken(r))
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	case errors.Is(err, domainauth.ErrMissingToken):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "missing_token", Err: err})
	case errors.Is(err, domainauth.ErrMalformedToken):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "malformed_token", Err: err})
	default:
		h.logger().Error("logout failed", "error", err)
		writeInternalError(w)
	}
}

func writeInternalError(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("internal server error"),
	})
}
