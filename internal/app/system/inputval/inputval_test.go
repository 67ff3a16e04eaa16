// internal/app/system/inputval/inputval_test.go
package inputval_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/conghub/internal/app/system/inputval"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"user.name@example.com",
		"user@localhost",
		"USER@EXAMPLE.COM",
		"user+tag@example.org",
	}
	for _, s := range valid {
		if !inputval.IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"user",
		"@example.com",
		"user@",
		"user@@example.com",
		"us er@example.com",
		"Name <user@example.com>",
		".user@example.com",
		"user.@example.com",
		"user@.example.com",
		"user..name@example.com",
	}
	for _, s := range invalid {
		if inputval.IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = true, want false", s)
		}
	}
}

func TestErrors_Join(t *testing.T) {
	var errs inputval.Errors
	if !errs.Empty() {
		t.Error("expected new Errors to be empty")
	}

	errs.Add("email", "must be a valid email address")
	errs.Add("cong_number", "must be a positive number")

	if errs.Empty() {
		t.Error("expected Errors to be non-empty after Add")
	}

	got := errs.Join()
	want := "email: must be a valid email address, cong_number: must be a positive number"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Central"}`))
	var dst payload
	if errs := inputval.DecodeBody(req, &dst); !errs.Empty() {
		t.Fatalf("DecodeBody failed: %v", errs.Join())
	}
	if dst.Name != "Central" {
		t.Errorf("name: got %q, want %q", dst.Name, "Central")
	}
}

func TestDecodeBody_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	var dst map[string]any
	errs := inputval.DecodeBody(req, &dst)
	if errs.Empty() {
		t.Fatal("expected an error for malformed JSON")
	}
	if errs[0].Field != "body" {
		t.Errorf("field: got %q, want %q", errs[0].Field, "body")
	}
}
