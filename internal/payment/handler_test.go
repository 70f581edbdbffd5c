package payment_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
)

type mockLedger struct {
	created  payment.CreatePaymentDTO
	verified string
	payments map[string]*payment.Payment
	err      error
}

func (m *mockLedger) CreatePayment(_ context.Context, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
	m.created = dto
	if m.err != nil {
		return nil, m.err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	payer, err := payment.NewPayer(dto.PayerType, dto.PayerID)
	if err != nil {
		return nil, err
	}
	return payment.NewPayment("pay-1", dto, payer, "BDT", time.Now().UTC()), nil
}

func (m *mockLedger) VerifyPayment(_ context.Context, id string) (*payment.Payment, error) {
	m.verified = id
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.payments[id]
	if !ok {
		return nil, errors.ErrPaymentNotFound
	}
	p.MarkVerified(time.Now().UTC())
	return p, nil
}

func (m *mockLedger) GetPayment(_ context.Context, id string) (*payment.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, errors.ErrPaymentNotFound
}

func (m *mockLedger) ListPaymentsByPayer(_ context.Context, payerType, payerID string) ([]*payment.Payment, error) {
	if _, err := payment.NewPayer(payerType, payerID); err != nil {
		return nil, err
	}
	var out []*payment.Payment
	for _, p := range m.payments {
		if string(p.Payer.Kind()) == payerType && p.Payer.Ref() == payerID {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ = Describe("Handler", func() {
	var (
		svc    *mockLedger
		router chi.Router
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Error.Code
	}

	BeforeEach(func() {
		existing := payment.NewPayment("pay-9", payment.CreatePaymentDTO{
			Amount:        decimal.NewFromInt(1200),
			PaymentMethod: "nagad",
			TransactionID: "TXN9",
			Purpose:       "tuition",
		}, payment.GuardianPayer{ID: "G1"}, "BDT", time.Now().UTC())
		svc = &mockLedger{payments: map[string]*payment.Payment{"pay-9": existing}}

		h := payment.NewHandler(transport.NewBaseHandler(slog.New(slog.NewTextHandler(GinkgoWriter, nil))), svc)
		router = chi.NewRouter()
		router.Post("/payments", h.CreatePayment)
		router.Get("/payments/{id}", h.GetPayment)
		router.Patch("/payments/{id}/verify", h.VerifyPayment)
		router.Get("/payers/{payerType}/{payerID}/payments", h.ListPaymentsByPayer)
	})

	Describe("POST /payments", func() {
		It("creates a payment and answers 201", func() {
			rec := do(http.MethodPost, "/payments",
				`{"amount":"500","payment_method":"bkash","transaction_id":"TXN1","payer_id":"U1","payer_type":"student","purpose":"tuition"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var resp payment.PaymentResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Status).To(Equal(payment.StatusPending))
			Expect(resp.Payer.Type).To(Equal(payment.PayerKindStudent))
			Expect(resp.Amount.String()).To(Equal("500"))
			Expect(svc.created.TransactionID).To(Equal("TXN1"))
		})

		It("accepts a numeric amount", func() {
			rec := do(http.MethodPost, "/payments",
				`{"amount":250.5,"payment_method":"card","transaction_id":"T2","payer_id":"U2","payer_type":"tutor","purpose":"fee"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(svc.created.Amount.Equal(decimal.RequireFromString("250.5"))).To(BeTrue())
		})

		It("answers 400 for a non-positive amount", func() {
			rec := do(http.MethodPost, "/payments",
				`{"amount":"0","payment_method":"bkash","transaction_id":"TXN1","payer_id":"U1","payer_type":"student","purpose":"tuition"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rec)).To(Equal(string(errors.ErrCodeValidationFailed)))
		})

		It("answers 400 for malformed or unknown fields", func() {
			Expect(do(http.MethodPost, "/payments", `{"amount":`).Code).To(Equal(http.StatusBadRequest))
			rec := do(http.MethodPost, "/payments", `{"amount":"5","surprise":true}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rec)).To(Equal(string(errors.ErrCodeInvalidRequestBody)))
		})

		It("answers 500 without leaking storage details", func() {
			svc.err = errors.NewStorageError("failed to create payment", context.DeadlineExceeded)
			rec := do(http.MethodPost, "/payments",
				`{"amount":"500","payment_method":"bkash","transaction_id":"TXN1","payer_id":"U1","payer_type":"student","purpose":"tuition"}`)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(errorCode(rec)).To(Equal(string(errors.ErrCodeStorageFailed)))
			Expect(rec.Body.String()).NotTo(ContainSubstring("deadline"))
		})
	})

	Describe("GET /payments/{id}", func() {
		It("returns the payment", func() {
			rec := do(http.MethodGet, "/payments/pay-9", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"transaction_id":"TXN9"`))
		})

		It("answers 404 for an unknown id", func() {
			rec := do(http.MethodGet, "/payments/nope", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(errorCode(rec)).To(Equal(string(errors.ErrCodePaymentNotFound)))
		})
	})

	Describe("PATCH /payments/{id}/verify", func() {
		It("verifies the payment", func() {
			rec := do(http.MethodPatch, "/payments/pay-9/verify", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(svc.verified).To(Equal("pay-9"))
			Expect(rec.Body.String()).To(ContainSubstring(`"status":"completed"`))
		})

		It("answers 409 when the ledger reports a conflict", func() {
			svc.err = errors.ErrPaymentAlreadyCompleted
			rec := do(http.MethodPatch, "/payments/pay-9/verify", "")
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(errorCode(rec)).To(Equal(string(errors.ErrCodePaymentAlreadyCompleted)))
		})

		It("answers 404 for an unknown id", func() {
			Expect(do(http.MethodPatch, "/payments/nope/verify", "").Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /payers/{payerType}/{payerID}/payments", func() {
		It("lists the payer's payments", func() {
			rec := do(http.MethodGet, "/payers/guardian/G1/payments", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp payment.PaymentsResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Payments).To(HaveLen(1))
			Expect(resp.Payments[0].ID).To(Equal("pay-9"))
		})

		It("returns an empty array rather than null", func() {
			rec := do(http.MethodGet, "/payers/student/nobody/payments", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"payments":[]`))
		})

		It("answers 400 for an unknown payer type", func() {
			Expect(do(http.MethodGet, "/payers/admin/G1/payments", "").Code).To(Equal(http.StatusBadRequest))
		})
	})
})
