package authz

// Action names an operation the permission table can allow or deny.
type Action string

const (
	ActionUserCreate     Action = "user:create"
	ActionUserUpdate     Action = "user:update"
	ActionUserDelete     Action = "user:delete"
	ActionUserChangeRole Action = "user:change-role"
	ActionUserPicture    Action = "user:picture"

	ActionResourceRead  Action = "resource:read"
	ActionResourceWrite Action = "resource:write"

	ActionCredentialReveal Action = "credential:reveal"
)

// Decision is the outcome of a permission check. Reason is for logs and
// error messages, never for branching.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide evaluates whether caller may perform action against a user holding
// the target role. For actions that do not target a user, pass an empty
// target. Self-referential rules (a user editing their own profile, the ban
// on deleting yourself) are enforced by the owning service, not here: this
// table only sees roles.
func Decide(caller Role, action Action, target Role) Decision {
	if !IsGating(caller) {
		return deny("role has no management permissions")
	}

	switch action {
	case ActionUserCreate, ActionUserChangeRole:
		switch caller {
		case RoleAdmin:
			return allow()
		case RoleHRM:
			if !hrmAssignable[target] {
				return deny("HRM may only assign EMPLOYEE, PROJECT_MANAGER or OPERATION_MANAGER")
			}
			return allow()
		}
		return deny("only ADMIN and HRM can manage user accounts")

	case ActionUserUpdate:
		switch caller {
		case RoleAdmin:
			return allow()
		case RoleHRM, RoleOperationManager:
			if elevated[target] {
				return deny("cannot update users holding elevated roles")
			}
			return allow()
		}
		return deny("insufficient role to update other users")

	case ActionUserDelete:
		switch caller {
		case RoleAdmin:
			return allow()
		case RoleHRM:
			if elevated[target] {
				return deny("HRM cannot delete users holding elevated roles")
			}
			return allow()
		}
		return deny("only ADMIN and HRM can delete users")

	case ActionUserPicture:
		switch caller {
		case RoleAdmin:
			return allow()
		case RoleHRM, RoleOperationManager, RoleProjectManager:
			if elevated[target] {
				return deny("cannot manage pictures of users holding elevated roles")
			}
			return allow()
		}
		return deny("insufficient role to manage user pictures")

	case ActionResourceRead:
		switch caller {
		case RoleAdmin, RoleHRM, RoleOperationManager:
			return allow()
		}
		return deny("insufficient role to read employee records")

	case ActionResourceWrite:
		switch caller {
		case RoleAdmin, RoleHRM:
			return allow()
		}
		return deny("only ADMIN and HRM can modify employee records")

	case ActionCredentialReveal:
		switch caller {
		case RoleAdmin, RoleHRM:
			return allow()
		}
		return deny("only ADMIN and HRM can reveal stored secrets")
	}

	return deny("unknown action")
}

// AssignableRoles returns the set of roles the caller may put on a user
// account, for create and change-role flows.
func AssignableRoles(caller Role) []Role {
	switch caller {
	case RoleAdmin:
		return AllRoles()
	case RoleHRM:
		out := make([]Role, 0, len(hrmAssignable))
		for _, r := range allRoles {
			if hrmAssignable[r] {
				out = append(out, r)
			}
		}
		return out
	}
	return nil
}

// CanAssign reports whether caller may put role on a user account.
func CanAssign(caller, role Role) bool {
	for _, r := range AssignableRoles(caller) {
		if r == role {
			return true
		}
	}
	return false
}
