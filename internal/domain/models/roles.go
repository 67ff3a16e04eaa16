// internal/domain/models/roles.go
package models

// Congregation role values. Role lists supplied by clients are validated
// element-wise against this set before being persisted; an unrecognized
// entry rejects the whole list rather than being dropped.
const (
	RoleAdmin        = "admin"
	RoleLMMO         = "lmmo"
	RoleLMMOBackup   = "lmmo-backup"
	RoleViewSchedule = "view_meeting_schedule"
)

// AllowedCongRoles contains all valid congregation roles.
var AllowedCongRoles = []string{RoleAdmin, RoleLMMO, RoleLMMOBackup, RoleViewSchedule}

// IsValidCongRole checks if a value is a valid congregation role.
func IsValidCongRole(role string) bool {
	for _, r := range AllowedCongRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidCongRoles reports whether every entry in roles is a recognized
// congregation role. An empty list is valid (a member with no roles).
func ValidCongRoles(roles []string) bool {
	for _, r := range roles {
		if !IsValidCongRole(r) {
			return false
		}
	}
	return true
}
