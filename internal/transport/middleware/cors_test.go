package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport/middleware"
)

var _ = Describe("CORS", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	preflight := func(allowed, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/payments", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()
		middleware.CORS(allowed)(ok).ServeHTTP(rec, req)
		return rec
	}

	It("answers a preflight from a listed origin", func() {
		rec := preflight("https://admin.example, https://tuition.example", "https://tuition.example")

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://tuition.example"))
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(Equal(http.MethodPatch))
		Expect(rec.Header().Get("Access-Control-Max-Age")).To(Equal("600"))
	})

	It("does not allow an unlisted origin", func() {
		rec := preflight("https://tuition.example", "https://evil.example")

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("allows any origin with a wildcard", func() {
		rec := preflight("*", "https://anywhere.example")

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("passes requests through untouched when no origin is configured", func() {
		rec := preflight("", "https://tuition.example")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("decorates simple requests from a listed origin", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
		req.Header.Set("Origin", "https://tuition.example")
		rec := httptest.NewRecorder()
		middleware.CORS("https://tuition.example")(ok).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://tuition.example"))
	})
})
