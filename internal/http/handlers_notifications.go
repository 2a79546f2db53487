package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sb-patel/notification-system-backend/internal/data"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

// NotificationHandlers provides HTTP handlers for notification operations.
type NotificationHandlers struct {
	Svc    *service.NotificationService
	Logger *slog.Logger
}

func (h *NotificationHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// ListMine handles GET /api/users/notifications?status=read|unread.
// The listing covers the caller's individual notifications plus broadcasts,
// newest first.
func (h *NotificationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	status := model.ReadStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_status",
			Err:     errors.New("status must be read or unread"),
		})
		return
	}

	list, err := h.Svc.ListForUser(r.Context(), principal.ID, status)
	if err != nil {
		h.logger().Error("list notifications failed", "error", err, "principal_id", principal.ID)
		writeInternalError(w)
		return
	}
	if list == nil {
		list = []*model.Notification{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"notifications": list})
}

// MarkRead handles PUT /api/users/notifications/{id}/read. Repeating the
// call returns the same record; a notification outside the caller's
// visibility answers 404.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	id := r.PathValue("id")
	n, err := h.Svc.MarkRead(r.Context(), id, principal.ID)
	if err != nil {
		if errors.Is(err, data.ErrNotificationNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "notification_not_found", Err: err})
			return
		}
		h.logger().Error("mark notification read failed", "error", err, "notification_id", id)
		writeInternalError(w)
		return
	}
	WriteJSON(w, http.StatusOK, n)
}

// Create handles POST /api/admins/notifications. The record is persisted
// first; live delivery is best-effort and never fails the request.
func (h *NotificationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNotificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if verr := req.Validate(); verr != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: verr})
			return
		}
		h.logger().Error("create notification failed", "error", err)
		writeInternalError(w)
		return
	}
	WriteJSON(w, http.StatusCreated, n)
}
