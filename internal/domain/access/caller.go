package access

type Role string

const (
	RoleAdmin    Role = "Admin"    // Full access to every record
	RoleManager  Role = "Manager"  // Scoped to the department of the linked employee
	RoleEmployee Role = "Employee" // Own records only
)

// Roles lists every role accepted by the user directory.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// Caller is the authenticated requester, resolved once per request.
//
// For a Manager, Department is the department of the linked Employee record, not
// the department stored on the user record. It is empty when the manager has no
// resolvable employee link.
type Caller struct {
	UserID     string
	Email      string
	Name       string
	Role       Role
	EmployeeID string
	Department string
}

// IsAdmin checks if the caller has the Admin role
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsManager checks if the caller has the Manager role
func (c Caller) IsManager() bool {
	return c.Role == RoleManager
}

// IsPrivileged checks if the caller may manage records (Admin or Manager)
func (c Caller) IsPrivileged() bool {
	return c.Role == RoleAdmin || c.Role == RoleManager
}
