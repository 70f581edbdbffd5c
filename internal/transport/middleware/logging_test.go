package middleware_test

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport/middleware"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/pkg/logger"
)

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, stderrors.New("connection reset by peer") }
func (brokenBody) Close() error             { return nil }

var _ = Describe("Logging", func() {
	var logs *bytes.Buffer

	serve := func(req *http.Request, handler http.HandlerFunc) *httptest.ResponseRecorder {
		lg := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		req = req.WithContext(logger.NewContext(req.Context(), lg))
		rec := httptest.NewRecorder()
		middleware.Logging(handler).ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		logs = &bytes.Buffer{}
	})

	It("hands the full body to the handler and masks sensitive fields in the log", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{"amount":"500","password":"hunter2"}`))

		var seen string
		rec := serve(req, func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			seen = string(body)
			w.WriteHeader(http.StatusCreated)
		})

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(seen).To(Equal(`{"amount":"500","password":"hunter2"}`))
		Expect(logs.String()).To(ContainSubstring("[FILTERED]"))
		Expect(logs.String()).NotTo(ContainSubstring("hunter2"))
	})

	It("warns and skips the body when the request body cannot be read", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
		req.Body = brokenBody{}

		var readErr error
		rec := serve(req, func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusBadRequest)
		})

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(readErr).To(MatchError(ContainSubstring("connection reset by peer")))
		Expect(logs.String()).To(ContainSubstring("failed to read request body"))
		Expect(logs.String()).To(ContainSubstring(`body=""`))
	})
})
