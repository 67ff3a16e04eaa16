// internal/app/system/inputval/inputval.go

// Package inputval decodes JSON request bodies and accumulates field-level
// validation errors. Handlers collect every field error, log the combined
// message, and answer with a single generic bad-request body so field
// detail never leaks to the caller.
package inputval

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// FieldError is a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Errors accumulates field errors for one request.
type Errors []FieldError

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Empty reports whether no field errors were recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Join renders all field errors as "field: message, field: message" for the
// audit log.
func (e Errors) Join() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, ", ")
}

// DecodeBody decodes the JSON request body into dst. A missing body or
// malformed JSON is reported as a single "body" field error so it flows
// through the same aggregation as field-level failures.
func DecodeBody(r *http.Request, dst any) Errors {
	if r.Body == nil {
		return Errors{{Field: "body", Message: "request body is required"}}
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return Errors{{Field: "body", Message: "invalid JSON: " + err.Error()}}
	}
	return nil
}

// IsValidEmail reports whether s looks like a usable email address.
// Deliberately permissive about single-label domains (dev and test
// environments) while rejecting display-name forms, whitespace, and
// leading/trailing/consecutive dots.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if domain == "" {
		return false
	}
	if strings.ContainsAny(s, " \t<>") {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// ErrValidation can be wrapped by callers that need a sentinel for
// validation failures outside the HTTP layer.
var ErrValidation = errors.New("validation failed")
