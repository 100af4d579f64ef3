package domain

// Action names an operation gated by the authorization policy.
type Action string

const (
	ActionListRoles    Action = "roles:list"
	ActionReadRole     Action = "roles:read"
	ActionCreateRole   Action = "roles:create"
	ActionUpdateRole   Action = "roles:update"
	ActionDeleteRole   Action = "roles:delete"
	ActionReadUserRole Action = "users:read-role"
	ActionAssignRole   Action = "users:assign-role"
	ActionListUsers    Action = "users:list"
	ActionReadUser     Action = "users:read"
	ActionUpdateUser   Action = "users:update"
	ActionDeleteUser   Action = "users:delete"
)

// anyAuthenticated grants an action to every verified actor whatever its role.
const anyAuthenticated = "*"

// policy is the default-deny table of permitted roles per action.
var policy = map[Action][]string{
	ActionListRoles:    {RoleSuperAdmin, RoleAdmin},
	ActionReadRole:     {RoleSuperAdmin, RoleAdmin},
	ActionCreateRole:   {RoleSuperAdmin},
	ActionUpdateRole:   {RoleSuperAdmin},
	ActionDeleteRole:   {RoleSuperAdmin},
	ActionReadUserRole: {RoleSuperAdmin, RoleAdmin},
	ActionAssignRole:   {RoleSuperAdmin},
	ActionListUsers:    {anyAuthenticated},
	ActionReadUser:     {anyAuthenticated},
	ActionUpdateUser:   {anyAuthenticated},
	ActionDeleteUser:   {RoleSuperAdmin},
}

// Allows reports whether role may perform action. Unknown actions are denied.
func (a Action) Allows(role string) bool {
	if role == "" {
		return false
	}
	for _, allowed := range policy[a] {
		if allowed == role || allowed == anyAuthenticated {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden unless actor may perform action.
func Authorize(actor Identity, action Action) error {
	if !actor.Authenticated() || !action.Allows(actor.Role) {
		return ErrForbidden
	}
	return nil
}

// Tier returns the privilege rank of role: superadmin > admin > everything else.
func Tier(role string) int {
	switch role {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	default:
		return 1
	}
}

// CanGrant reports whether an actor holding actorRole may hand target to
// another user. Only the top tier may grant its own tier.
func CanGrant(actorRole, target string) bool {
	if actorRole == RoleSuperAdmin {
		return true
	}
	return Tier(target) < Tier(actorRole)
}

// Reserved reports whether role is one of the seeded roles the service refers
// to by name: the two named in the policy table and the role given at
// registration. Reserved roles cannot be renamed or deleted.
func Reserved(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}
