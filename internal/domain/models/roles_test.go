// internal/domain/models/roles_test.go
package models_test

import (
	"testing"

	"github.com/dalemusser/conghub/internal/domain/models"
)

func TestValidCongRoles(t *testing.T) {
	if !models.ValidCongRoles([]string{"admin", "lmmo"}) {
		t.Error("expected [admin lmmo] to be valid")
	}
	if !models.ValidCongRoles([]string{"admin", "lmmo", "lmmo-backup", "view_meeting_schedule"}) {
		t.Error("expected full role set to be valid")
	}
	if !models.ValidCongRoles(nil) {
		t.Error("expected empty role set to be valid")
	}
	if models.ValidCongRoles([]string{"admin", "superuser"}) {
		t.Error("expected [admin superuser] to be invalid")
	}
	if models.ValidCongRoles([]string{"ADMIN"}) {
		t.Error("expected role matching to be case-sensitive")
	}
}

func TestIsPocket(t *testing.T) {
	if !(models.User{GlobalRole: models.GlobalRolePocket}).IsPocket() {
		t.Error("expected pocket user to report IsPocket")
	}
	if (models.User{GlobalRole: models.GlobalRoleVIP}).IsPocket() {
		t.Error("expected vip user not to report IsPocket")
	}
}
