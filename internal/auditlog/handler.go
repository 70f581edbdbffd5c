package auditlog

import (
	"context"
	"iter"
	"net/http"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Append(ctx context.Context, entry *Entry) error
	ListForUser(ctx context.Context, userID string) iter.Seq2[*Entry, error]
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

// ListForUser handles GET /api/v1/users/{userID}/activity-logs
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := Collect(h.Service.ListForUser(r.Context(), userID))
	if err != nil {
		h.Logger.Error("ListForUser: failed to read audit trail", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EntriesResponse{
		UserID:  userID,
		Entries: entries,
	})
}

// Append handles POST /api/v1/activity-logs
func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	var req AppendEntryRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	entry := req.ToEntry()
	if err := h.Service.Append(r.Context(), entry); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}
