package payment

import (
	"context"
	"net/http"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreatePayment(ctx context.Context, dto CreatePaymentDTO) (*Payment, error)
	VerifyPayment(ctx context.Context, id string) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	ListPaymentsByPayer(ctx context.Context, payerType, payerID string) ([]*Payment, error)
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

// CreatePayment handles POST /api/v1/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var dto CreatePaymentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.CreatePayment(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreatePayment: payment created", "payment_id", p.ID, "payer_id", p.Payer.Ref())
	h.WriteJSON(w, http.StatusCreated, p.ToResponse())
}

// GetPayment handles GET /api/v1/payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

// VerifyPayment handles PATCH /api/v1/payments/{id}/verify
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Service.VerifyPayment(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("VerifyPayment: payment verified", "payment_id", id)
	h.WriteJSON(w, http.StatusOK, p.ToResponse())
}

// ListPaymentsByPayer handles GET /api/v1/payers/{payerType}/{payerID}/payments
func (h *Handler) ListPaymentsByPayer(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.ListPaymentsByPayer(r.Context(), chi.URLParam(r, "payerType"), chi.URLParam(r, "payerID"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := PaymentsResponse{Payments: make([]PaymentResponse, len(payments))}
	for i, p := range payments {
		resp.Payments[i] = p.ToResponse()
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
