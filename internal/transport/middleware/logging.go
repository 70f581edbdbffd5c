package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/pkg/logger"
	"github.com/go-chi/chi/middleware"
)

const maxLoggedBody = 4 << 10

// sensitiveFields are masked in logged headers and JSON bodies.
var sensitiveFields = []string{
	"authorization",
	"cookie",
	"token",
	"secret",
	"password",
	"api_key",
}

// Logging writes one line for the request and one for the response through
// the request-scoped logger.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lg := logger.From(r.Context())

		var loggedBody string
		if r.Body != nil {
			reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
			if err != nil {
				lg.Warn("failed to read request body", "error", err, "method", r.Method, "path", r.URL.Path)
			} else {
				loggedBody = filterBody(reqBody)
			}
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(reqBody), r.Body))
		}

		lg.Info("incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"headers", filterHeaders(r.Header),
			"body", loggedBody,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		respBody := &bytes.Buffer{}
		ww.Tee(respBody)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		lg.Log(r.Context(), level, "response",
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"response_size", ww.BytesWritten(),
			"body", filterBody(respBody.Bytes()),
		)
	})
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func filterHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			filtered[name] = "[FILTERED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}

func filterBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBody {
		return "[TRUNCATED]"
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}

	filtered, err := json.Marshal(filterJSON(data))
	if err != nil {
		return "[UNPRINTABLE]"
	}
	return string(filtered)
}

func filterJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				filtered[key] = "[FILTERED]"
				continue
			}
			filtered[key] = filterJSON(value)
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(v))
		for i, item := range v {
			filtered[i] = filterJSON(item)
		}
		return filtered
	default:
		return v
	}
}
