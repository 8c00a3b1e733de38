package authz

// Role is the value stored on a user account. Only the gating roles carry
// permissions; the informational roles exist for directory display and are
// never granted any action.
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleHRM              Role = "HRM"
	RoleOperationManager Role = "OPERATION_MANAGER"
	RoleProjectManager   Role = "PROJECT_MANAGER"
	RoleEmployee         Role = "EMPLOYEE"

	RoleCEO     Role = "CEO"
	RoleCTO     Role = "CTO"
	RoleStaff   Role = "STAFF"
	RoleInterns Role = "INTERNS"
)

var allRoles = []Role{
	RoleAdmin,
	RoleHRM,
	RoleOperationManager,
	RoleProjectManager,
	RoleEmployee,
	RoleCEO,
	RoleCTO,
	RoleStaff,
	RoleInterns,
}

var gatingRoles = map[Role]bool{
	RoleAdmin:            true,
	RoleHRM:              true,
	RoleOperationManager: true,
	RoleProjectManager:   true,
	RoleEmployee:         true,
}

// AllRoles returns every role the system accepts on a user record.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// IsValid reports whether r is a known role.
func IsValid(r Role) bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsGating reports whether r participates in permission decisions.
// Informational roles (CEO, CTO, STAFF, INTERNS) are never allowed anything.
func IsGating(r Role) bool {
	return gatingRoles[r]
}

// elevated roles may not be targeted by HRM or OPERATION_MANAGER callers
// on update, delete and picture actions.
var elevated = map[Role]bool{
	RoleAdmin:            true,
	RoleHRM:              true,
	RoleOperationManager: true,
}

// hrmAssignable is the set of roles HRM may put on a user account. It is
// narrower than "not elevated": informational roles are ADMIN-only too.
var hrmAssignable = map[Role]bool{
	RoleEmployee:         true,
	RoleProjectManager:   true,
	RoleOperationManager: true,
}
