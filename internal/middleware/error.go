package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/grocerease/backend/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder holds back non-JSON error bodies so they can be rewritten
// as ErrorResponse. Everything else is written through.
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	held        bool
	body        strings.Builder
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.statusCode = statusCode
	ct := r.Header().Get("Content-Type")
	r.held = statusCode >= 400 && !strings.HasPrefix(ct, "application/json")
	if !r.held {
		r.ResponseWriter.WriteHeader(statusCode)
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if r.held {
		return r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok && !r.held {
		f.Flush()
	}
}

// ErrorHandler wraps the whole HTTP handler: panics become a 500 and plain
// text error responses (router 404/405, http.Error) become JSON.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic serving request",
					zap.Any("panic", err),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				if rec.wroteHeader && !rec.held {
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if rec.held {
				msg := strings.TrimSpace(rec.body.String())
				if msg == "" {
					msg = http.StatusText(rec.statusCode)
				}
				writeJSONError(w, rec.statusCode, msg)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Del("X-Content-Type-Options")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
