package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleStudent = "student"
)

// Template pesan error role
const ErrNoCapability = "❌ Role %q tidak boleh mengakses fitur %s."

func RoleErrorCapability(role string, feature string) string {
	return fmt.Sprintf(ErrNoCapability, role, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var AllRoles = []string{
	RoleAdmin,
	RoleTeacher,
	RoleParent,
	RoleStudent,
}

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
