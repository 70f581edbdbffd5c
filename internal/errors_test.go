package internal_test

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
)

var _ = Describe("AppError", func() {
	It("maps each error type to its status code", func() {
		Expect(errors.NewValidationError("bad", errors.ErrCodeValidationFailed).StatusCode).To(Equal(http.StatusBadRequest))
		Expect(errors.ErrPaymentNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(errors.ErrPaymentAlreadyCompleted.StatusCode).To(Equal(http.StatusConflict))
		Expect(errors.NewStorageError("write failed", nil).StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("is found through wrapping", func() {
		wrapped := fmt.Errorf("verify: %w", errors.ErrPaymentNotFound)

		appErr, ok := errors.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodePaymentNotFound))
		Expect(errors.IsType(wrapped, errors.ErrorTypeNotFound)).To(BeTrue())
		Expect(errors.IsType(stderrors.New("plain"), errors.ErrorTypeNotFound)).To(BeFalse())
	})

	It("keeps the storage cause for errors.Is but out of the JSON body", func() {
		cause := stderrors.New("pq: deadlock detected")
		err := errors.NewStorageError("failed to create payment", cause)

		Expect(stderrors.Is(err, cause)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("deadlock"))

		_, body := err.ToHTTPResponse()
		raw, marshalErr := json.Marshal(body)
		Expect(marshalErr).NotTo(HaveOccurred())
		Expect(string(raw)).To(MatchJSON(`{"error":{"type":"STORAGE_ERROR","code":"STORAGE_FAILED","message":"failed to create payment"}}`))
	})

	It("describes validation failures by their field messages", func() {
		err := errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: []errors.ValidationError{
				{Field: "amount", Message: "amount must be greater than zero"},
				{Field: "purpose", Message: "purpose is required"},
			}})

		Expect(err.Error()).To(Equal("amount must be greater than zero"))
		Expect(err.GetDetailedMessage()).To(Equal("amount must be greater than zero; purpose is required"))
	})
})
