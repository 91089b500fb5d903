package access

import "slices"

// Resource identifies the record type a scope decision applies to.
type Resource string

const (
	ResourceEmployee    Resource = "employee"
	ResourceAttendance  Resource = "attendance"
	ResourcePerformance Resource = "performance"
	ResourceKPI         Resource = "kpi"
)

type ScopeKind int

const (
	ScopeDenied     ScopeKind = iota // no records
	ScopeAll                         // every record
	ScopeDepartment                  // records whose department equals Scope.Department
	ScopeSelf                        // records whose employee id equals Scope.EmployeeID
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeDepartment:
		return "department"
	case ScopeSelf:
		return "self"
	default:
		return "denied"
	}
}

// Scope is a declarative visibility predicate. Storage call sites translate it
// into their own query construct; Matches evaluates it in memory.
type Scope struct {
	Kind       ScopeKind
	Department string
	EmployeeID string
	Reason     error
}

// Target carries the fields of a record that visibility rules look at.
type Target struct {
	EmployeeID string
	Department string
}

func AllScope() Scope {
	return Scope{Kind: ScopeAll}
}

func DepartmentScope(department string) Scope {
	return Scope{Kind: ScopeDepartment, Department: department}
}

func SelfScope(employeeID string) Scope {
	return Scope{Kind: ScopeSelf, EmployeeID: employeeID}
}

func DeniedScope(reason error) Scope {
	if reason == nil {
		reason = ErrForbidden
	}
	return Scope{Kind: ScopeDenied, Reason: reason}
}

// Denied reports whether the scope grants no access at all.
func (s Scope) Denied() bool {
	return s.Kind == ScopeDenied
}

// Err returns the denial reason, or nil when the scope grants access.
func (s Scope) Err() error {
	if s.Kind != ScopeDenied {
		return nil
	}
	if s.Reason == nil {
		return ErrForbidden
	}
	return s.Reason
}

// Matches reports whether a record with the given target fields is visible.
func (s Scope) Matches(t Target) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return s.Department != "" && t.Department == s.Department
	case ScopeSelf:
		return s.EmployeeID != "" && t.EmployeeID == s.EmployeeID
	default:
		return false
	}
}

// Visible keeps the rows the scope matches, in order, and reports how many it
// dropped. Services run it over storage results so a query that ignored the
// scope still cannot leak records.
func Visible[T any](s Scope, rows []T, target func(T) Target) ([]T, int) {
	kept := rows[:0:0]
	for _, row := range rows {
		if s.Matches(target(row)) {
			kept = append(kept, row)
		}
	}
	return kept, len(rows) - len(kept)
}

// Resolver computes visibility scopes and mutation permissions from a resolved
// Caller. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	departments []string
}

// NewResolver builds a resolver over the configured set of department codes.
func NewResolver(departments []string) *Resolver {
	return &Resolver{departments: slices.Clone(departments)}
}

// Departments returns a copy of the configured department codes.
func (r *Resolver) Departments() []string {
	return slices.Clone(r.departments)
}

// ValidDepartment reports whether code is one of the configured departments.
func (r *Resolver) ValidDepartment(code string) bool {
	return slices.Contains(r.departments, code)
}

// ListScope returns the set of records of the given type the caller may list.
func (r *Resolver) ListScope(c Caller, res Resource) Scope {
	switch c.Role {
	case RoleAdmin:
		return AllScope()
	case RoleManager:
		if c.Department == "" {
			return DeniedScope(ErrNoDepartment)
		}
		return DepartmentScope(c.Department)
	case RoleEmployee:
		if res != ResourcePerformance {
			return DeniedScope(ErrPrivilegeRequired)
		}
		if c.EmployeeID == "" {
			return DeniedScope(ErrNoEmployeeLink)
		}
		return SelfScope(c.EmployeeID)
	default:
		return DeniedScope(ErrUnknownRole)
	}
}

// CanRead decides single-record reads. The rule is the same for every record type.
func (r *Resolver) CanRead(c Caller, res Resource, t Target) error {
	switch c.Role {
	case RoleAdmin:
		return nil
	case RoleManager:
		return sameDepartment(c, t)
	case RoleEmployee:
		if c.EmployeeID == "" {
			return ErrNoEmployeeLink
		}
		if t.EmployeeID != c.EmployeeID {
			return ErrNotOwnRecord
		}
		return nil
	default:
		return ErrUnknownRole
	}
}

// CanWrite decides create and update of a record whose department is t.Department.
// Employee records and KPI definitions are Admin-only; attendance and performance
// records may also be written by a Manager of the same department.
func (r *Resolver) CanWrite(c Caller, res Resource, t Target) error {
	if res == ResourceEmployee || res == ResourceKPI {
		if c.Role != RoleAdmin {
			return ErrAdminRequired
		}
		return nil
	}

	switch c.Role {
	case RoleAdmin:
		return nil
	case RoleManager:
		return sameDepartment(c, t)
	case RoleEmployee:
		return ErrPrivilegeRequired
	default:
		return ErrUnknownRole
	}
}

// CanDelete decides deletion of any record type: Admin only.
func (r *Resolver) CanDelete(c Caller, res Resource) error {
	if c.Role != RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}

// CanBulkImport decides whether the caller may start a bulk import at all.
// Every row must still pass CanWrite; a failing row is reported on its own.
func (r *Resolver) CanBulkImport(c Caller, res Resource) error {
	if res == ResourceEmployee {
		if c.Role != RoleAdmin {
			return ErrAdminRequired
		}
		return nil
	}

	switch c.Role {
	case RoleAdmin:
		return nil
	case RoleManager:
		if c.Department == "" {
			return ErrNoDepartment
		}
		return nil
	case RoleEmployee:
		return ErrPrivilegeRequired
	default:
		return ErrUnknownRole
	}
}

func sameDepartment(c Caller, t Target) error {
	if c.Department == "" {
		return ErrNoDepartment
	}
	if t.Department != c.Department {
		return ErrOtherDepartment
	}
	return nil
}
