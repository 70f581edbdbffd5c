package notification

import (
	"context"
	"net/http"
	"strconv"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	MarkAsRead(ctx context.Context, id int64) (*Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type UnreadCountResponse struct {
	UserID string `json:"user_id"`
	Unread int64  `json:"unread"`
}

// UnreadCount handles GET /api/v1/users/{userID}/notifications/unread-count
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	count, err := h.Service.UnreadCount(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UnreadCountResponse{UserID: userID, Unread: count})
}

// MarkAsRead handles PATCH /api/v1/notifications/{id}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Warn("MarkAsRead: invalid notification ID", "id", idStr)
		h.HandleError(w, errors.NewValidationFieldError("id", "id must be a positive integer", errors.ErrCodeValidationFailed))
		return
	}

	n, err := h.Service.MarkAsRead(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, n)
}
