// internal/app/system/outcome/outcome.go

// Package outcome is the single place operation results are reported.
// Every handler code path produces exactly one (severity, message, status,
// body) tuple: the body is written to the HTTP response, the severity and
// audit message go to the structured log and, depending on configuration,
// to the audit_events collection.
package outcome

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/conghub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Logging modes, mirroring the audit switch: "all" (db + log), "db",
// "log", or "off".
const (
	ModeAll = "all"
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

const persistTimeout = 5 * time.Second

// Reporter records operation outcomes and renders HTTP responses.
type Reporter struct {
	store *audit.Store
	log   *zap.Logger
	mode  string
}

// New creates a Reporter. store may be nil when mode is "log" or "off".
func New(store *audit.Store, logger *zap.Logger, mode string) *Reporter {
	return &Reporter{store: store, log: logger, mode: mode}
}

// Message builds the minimal {"message": code} response body.
func Message(code string) map[string]string {
	return map[string]string{"message": code}
}

// BadRequest is the generic body for input-validation failures. The
// specific field errors are logged, never returned to the caller.
func BadRequest() map[string]string {
	return map[string]string{"message": "Bad request: provided inputs are invalid."}
}

// Info reports a successful operation outcome.
func (rep *Reporter) Info(w http.ResponseWriter, r *http.Request, status int, body any, message string) {
	rep.record(r, audit.SeverityInfo, message, status)
	writeJSON(w, status, body)
}

// Warn reports a rejected operation outcome (validation, authorization,
// not-found, business-rule violations).
func (rep *Reporter) Warn(w http.ResponseWriter, r *http.Request, status int, body any, message string) {
	rep.record(r, audit.SeverityWarn, message, status)
	writeJSON(w, status, body)
}

// Error reports an unexpected internal failure. The error detail is logged;
// the caller only sees a generic code.
func (rep *Reporter) Error(w http.ResponseWriter, r *http.Request, err error) {
	rep.log.Error("unexpected error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	rep.record(r, audit.SeverityWarn, "unexpected error: "+err.Error(), http.StatusInternalServerError)
	writeJSON(w, http.StatusInternalServerError, Message("INTERNAL_ERROR"))
}

func (rep *Reporter) record(r *http.Request, severity, message string, status int) {
	if rep.mode == ModeOff {
		return
	}

	if rep.mode == ModeAll || rep.mode == ModeLog {
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("email", r.Header.Get("email")),
			zap.String("ip", clientIP(r)),
		}
		if severity == audit.SeverityWarn {
			rep.log.Warn(message, fields...)
		} else {
			rep.log.Info(message, fields...)
		}
	}

	if (rep.mode == ModeAll || rep.mode == ModeDB) && rep.store != nil {
		event := audit.Event{
			Severity: severity,
			Message:  message,
			Status:   status,
			Method:   r.Method,
			Path:     r.URL.Path,
			Email:    r.Header.Get("email"),
			IP:       clientIP(r),
		}
		// Persist outside the request context so a cancelled request
		// cannot drop the audit record.
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := rep.store.Insert(ctx, event); err != nil {
			rep.log.Error("audit event insert failed", zap.Error(err))
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// clientIP extracts the client IP, preferring reverse-proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
